package repository

import "github.com/tu-usuario/office-orders/internal/domain/entity"

// OrderFilter filtros de listado de pedidos. Los campos vacíos no filtran.
type OrderFilter struct {
	EmployeeID      string
	Status          string
	ExcludeTerminal bool // excluye delivered y cancelled (cola activa)
	Limit           int
}

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// List devuelve pedidos según el filtro, ordenados del más reciente al más antiguo.
	List(filter OrderFilter) ([]*entity.Order, error)
	// UpdateStatus hace compare-and-set: solo escribe si el estado actual es
	// expectedStatus. Si stampDelivered es true estampa delivered_at solo si
	// aún era NULL. Devuelve el pedido actualizado, o (nil, nil) si el CAS no
	// encontró fila (estado cambió bajo los pies o el pedido no existe).
	UpdateStatus(id, expectedStatus, newStatus string, stampDelivered bool) (*entity.Order, error)
}
