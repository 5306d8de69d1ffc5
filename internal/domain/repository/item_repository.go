package repository

import "github.com/tu-usuario/office-orders/internal/domain/entity"

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	// List devuelve todos los artículos; si onlyAvailable es true, solo los disponibles.
	// Ordenado por nombre ascendente.
	List(onlyAvailable bool) ([]*entity.Item, error)
	Update(item *entity.Item) error
	Delete(id string) (bool, error)
}
