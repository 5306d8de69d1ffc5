package entity

import "time"

// Roles válidos para User. El rol es inmutable después de la creación:
// no existe operación de cambio de rol.
const (
	RoleEmployee   = "employee"
	RoleDispatcher = "dispatcher"
	RoleAdmin      = "admin"
)

// ValidRole indica si role es uno de los roles del sistema.
func ValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleDispatcher, RoleAdmin:
		return true
	default:
		return false
	}
}

// User representa una persona con acceso al sistema.
type User struct {
	ID           string
	Name         string
	Email        string // único, comparación case-sensitive
	PasswordHash string // bcrypt hash, nunca se serializa en respuestas
	Role         string // employee, dispatcher, admin
	Department   string // opcional
	CreatedAt    time.Time
	CreatedBy    string // ID del admin creador; vacío para la cuenta seed
}
