package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

// ItemUseCase CRUD del catálogo de artículos. Las mutaciones son solo admin
// (el guard vive en la capa HTTP); las lecturas son abiertas.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un artículo nuevo, disponible por defecto.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Price:     in.Price,
		Available: true,
		Category:  in.Category,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista el catálogo completo (vista admin) o solo lo disponible (vista empleado).
func (uc *ItemUseCase) List(onlyAvailable bool) ([]dto.ItemResponse, error) {
	items, err := uc.repo.List(onlyAvailable)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// Update actualización parcial: disponibilidad, precio, nombre y categoría
// se modifican de forma independiente.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = *in.Name
	}
	if in.Price != nil {
		item.Price = in.Price
	}
	if in.Available != nil {
		item.Available = *in.Available
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo del catálogo.
func (uc *ItemUseCase) Delete(id string) error {
	deleted, err := uc.repo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrItemNotFound
	}
	return nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Price:     it.Price,
		Available: it.Available,
		Category:  it.Category,
		CreatedAt: it.CreatedAt,
	}
}
