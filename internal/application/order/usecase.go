package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/office-orders/internal/application/dto"
	"github.com/tu-usuario/office-orders/internal/domain"
	"github.com/tu-usuario/office-orders/internal/domain/entity"
	"github.com/tu-usuario/office-orders/internal/domain/repository"
)

// listLimit tope de resultados de los listados de pedidos.
const listLimit = 100

// OrderUseCase motor del ciclo de vida de pedidos: creación, listado con
// visibilidad por rol y transiciones de estado validadas.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, userRepo repository.UserRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, userRepo: userRepo}
}

// Create crea un pedido en estado pending para cualquier rol autenticado.
// Resuelve nombre y departamento del solicitante y los congela en el pedido.
func (uc *OrderUseCase) Create(userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemID == "" || it.ItemName == "" || it.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}
	if len(in.Note) > entity.NoteMaxLen {
		return nil, domain.ErrInvalidInput
	}

	// El usuario pudo desaparecer entre la autenticación y la creación.
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.OrderItem{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Quantity: it.Quantity,
		})
	}
	ord := &entity.Order{
		ID:           uuid.New().String(),
		EmployeeID:   user.ID,
		EmployeeName: user.Name,
		Department:   user.Department,
		Items:        items,
		Status:       entity.StatusPending,
		Note:         in.Note,
		OrderedAt:    time.Now(),
	}
	if err := uc.orderRepo.Create(ord); err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// ListFor lista pedidos según la visibilidad del rol, del más reciente al más
// antiguo y con tope de 100 resultados:
//   - employee: solo sus propios pedidos.
//   - dispatcher/admin: estado exacto si se pasa statusFilter; si no, la cola
//     activa (todo excepto delivered y cancelled).
//   - cualquier otro rol: lista vacía.
func (uc *OrderUseCase) ListFor(callerID, callerRole, statusFilter string) ([]dto.OrderResponse, error) {
	if statusFilter != "" && !entity.ValidStatus(statusFilter) {
		return nil, domain.ErrInvalidInput
	}

	var filter repository.OrderFilter
	switch callerRole {
	case entity.RoleEmployee:
		filter = repository.OrderFilter{EmployeeID: callerID, Status: statusFilter, Limit: listLimit}
	case entity.RoleDispatcher, entity.RoleAdmin:
		if statusFilter != "" {
			filter = repository.OrderFilter{Status: statusFilter, Limit: listLimit}
		} else {
			filter = repository.OrderFilter{ExcludeTerminal: true, Limit: listLimit}
		}
	default:
		return []dto.OrderResponse{}, nil
	}

	orders, err := uc.orderRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

// Transition avanza el estado de un pedido. Solo dispatcher y admin.
// El nuevo estado debe ser el sucesor legal del actual (tabla de adyacencia);
// la escritura es compare-and-set sobre el estado leído, así una carrera entre
// dos transiciones concurrentes termina en conflicto y no en last-write-wins.
// Llegar a delivered estampa delivered_at exactamente una vez.
func (uc *OrderUseCase) Transition(orderID, callerRole, newStatus string) (*dto.OrderResponse, error) {
	if callerRole != entity.RoleDispatcher && callerRole != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.ValidStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}

	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !entity.CanTransition(ord.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := uc.orderRepo.UpdateStatus(orderID, ord.Status, newStatus, newStatus == entity.StatusDelivered)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// El estado cambió entre la lectura y el CAS
		return nil, domain.ErrConflict
	}
	return toOrderResponse(updated), nil
}

// Cancel pasa un pedido a cancelled. Un empleado solo puede cancelar su propio
// pedido mientras sigue pending; dispatcher y admin pueden cancelar cualquier
// pedido no terminal.
func (uc *OrderUseCase) Cancel(orderID, callerID, callerRole string) (*dto.OrderResponse, error) {
	ord, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, domain.ErrOrderNotFound
	}

	switch callerRole {
	case entity.RoleEmployee:
		if ord.EmployeeID != callerID {
			return nil, domain.ErrForbidden
		}
		if ord.Status != entity.StatusPending {
			return nil, domain.ErrInvalidTransition
		}
	case entity.RoleDispatcher, entity.RoleAdmin:
		// pueden cancelar cualquier pedido no terminal
	default:
		return nil, domain.ErrForbidden
	}

	if !entity.CanTransition(ord.Status, entity.StatusCancelled) {
		return nil, domain.ErrInvalidTransition
	}

	updated, err := uc.orderRepo.UpdateStatus(orderID, ord.Status, entity.StatusCancelled, false)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrConflict
	}
	return toOrderResponse(updated), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ItemID:   it.ItemID,
			ItemName: it.ItemName,
			Quantity: it.Quantity,
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		EmployeeID:   o.EmployeeID,
		EmployeeName: o.EmployeeName,
		Department:   o.Department,
		Items:        items,
		Status:       o.Status,
		Note:         o.Note,
		OrderedAt:    o.OrderedAt,
		DeliveredAt:  o.DeliveredAt,
	}
}
