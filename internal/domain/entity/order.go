package entity

import "time"

// Estados del ciclo de vida de un pedido.
const (
	StatusPending    = "pending"
	StatusAccepted   = "accepted"
	StatusInProgress = "in-progress"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// NoteMaxLen longitud máxima de la nota libre de un pedido.
const NoteMaxLen = 200

// ValidStatus indica si status es uno de los valores del enum.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusInProgress, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminalStatus indica si el estado es terminal (delivered o cancelled).
func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// CanTransition valida la tabla de adyacencia del ciclo de vida:
// exactamente una arista hacia adelante por estado no terminal
// (pending→accepted→in-progress→delivered) más la arista lateral a cancelled
// desde cualquier estado no terminal.
func CanTransition(from, to string) bool {
	if to == StatusCancelled {
		return !IsTerminalStatus(from)
	}
	switch from {
	case StatusPending:
		return to == StatusAccepted
	case StatusAccepted:
		return to == StatusInProgress
	case StatusInProgress:
		return to == StatusDelivered
	default:
		return false
	}
}

// OrderItem es una línea de pedido. Vive embebida dentro del Order
// (sin ciclo de vida propio). ItemName se desnormaliza para que el pedido
// siga siendo legible si el artículo cambia o se elimina.
type OrderItem struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"` // >= 1
}

// Order es una solicitud de entrega de un empleado.
// EmployeeName y Department se congelan en la creación y no cambian aunque
// el usuario origen cambie después. EmployeeID es una referencia débil:
// borrar el usuario no borra sus pedidos históricos.
type Order struct {
	ID           string
	EmployeeID   string
	EmployeeName string
	Department   string
	Items        []OrderItem
	Status       string
	Note         string
	OrderedAt    time.Time
	DeliveredAt  *time.Time // se estampa una sola vez al llegar a delivered
}
