package usecase

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]*entity.Item)}
	for _, it := range items {
		r.items[it.ID] = it
	}
	return r
}

func (r *fakeItemRepo) Create(item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetByName(name string) (*entity.Item, error) {
	for _, it := range r.items {
		if it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeItemRepo) List(onlyAvailable bool) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		if onlyAvailable && !it.Available {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeItemRepo) Update(item *entity.Item) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) Delete(id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

var _ repository.ItemRepository = (*fakeItemRepo)(nil)

func TestItemCreate_DisponiblePorDefecto(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepo())

	price := decimal.NewFromFloat(2.50)
	out, err := uc.Create(dto.CreateItemRequest{Name: "Café", Price: &price, Category: "bebidas"})

	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.Equal(t, "Café", out.Name)
	require.NotNil(t, out.Price)
	assert.True(t, out.Price.Equal(price))
}

func TestItemCreate_SinPrecioEsGratis(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepo())

	out, err := uc.Create(dto.CreateItemRequest{Name: "Agua"})
	require.NoError(t, err)
	assert.Nil(t, out.Price)
}

func TestItemCreate_NombreDuplicado(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepo(&entity.Item{ID: "it-1", Name: "Café", Available: true}))

	_, err := uc.Create(dto.CreateItemRequest{Name: "Café"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemList_SoloDisponibles(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepo(
		&entity.Item{ID: "it-1", Name: "Café", Available: true},
		&entity.Item{ID: "it-2", Name: "Agua", Available: false},
		&entity.Item{ID: "it-3", Name: "Té", Available: true},
	))

	all, err := uc.List(false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	available, err := uc.List(true)
	require.NoError(t, err)
	require.Len(t, available, 2)
	for _, it := range available {
		assert.True(t, it.Available)
	}
}

func TestItemUpdate_Parcial(t *testing.T) {
	price := decimal.NewFromInt(3)
	uc := NewItemUseCase(newFakeItemRepo(
		&entity.Item{ID: "it-1", Name: "Café", Price: &price, Available: true, Category: "bebidas"},
	))

	// Solo disponibilidad; el resto queda intacto
	off := false
	out, err := uc.Update("it-1", dto.UpdateItemRequest{Available: &off})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.Equal(t, "Café", out.Name)
	require.NotNil(t, out.Price)
	assert.True(t, out.Price.Equal(price))
}

func TestItemUpdate_NombreVacioRechazado(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepo(&entity.Item{ID: "it-1", Name: "Café", Available: true}))

	empty := ""
	_, err := uc.Update("it-1", dto.UpdateItemRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUpdate_Inexistente(t *testing.T) {
	uc := NewItemUseCase(newFakeItemRepo())

	name := "Café"
	_, err := uc.Update("fantasma", dto.UpdateItemRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemDelete(t *testing.T) {
	repo := newFakeItemRepo(&entity.Item{ID: "it-1", Name: "Café"})
	uc := NewItemUseCase(repo)

	require.NoError(t, uc.Delete("it-1"))
	assert.ErrorIs(t, uc.Delete("it-1"), domain.ErrItemNotFound)
}
