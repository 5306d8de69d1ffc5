package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateUserRequest entrada para crear un usuario (solo admin; password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=1"`
	Role       string `json:"role" validate:"required,oneof=employee dispatcher admin"`
	Department string `json:"department" validate:"omitempty,max=200"`
}

// DeleteUserRequest entrada para eliminar un usuario.
type DeleteUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// UserResponse salida de un usuario (nunca incluye el hash de password).
type UserResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}
