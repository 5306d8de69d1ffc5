package dto

import "time"

// OrderItemRequest línea de pedido en la creación.
type OrderItemRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	ItemName string `json:"itemName" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Note  string             `json:"note" validate:"omitempty,max=200"`
}

// UpdateOrderStatusRequest entrada para avanzar el estado de un pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted in-progress delivered cancelled"`
}

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ItemID   string `json:"itemId"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string              `json:"id"`
	EmployeeID   string              `json:"employeeId"`
	EmployeeName string              `json:"employeeName"`
	Department   string              `json:"department"`
	Items        []OrderItemResponse `json:"items"`
	Status       string              `json:"status"`
	Note         string              `json:"note,omitempty"`
	OrderedAt    time.Time           `json:"orderedAt"`
	DeliveredAt  *time.Time          `json:"deliveredAt,omitempty"`
}
