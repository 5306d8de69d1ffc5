package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un artículo del catálogo.
type CreateItemRequest struct {
	Name     string           `json:"name" validate:"required,min=1,max=200"`
	Price    *decimal.Decimal `json:"price"` // nil = gratis
	Category string           `json:"category" validate:"omitempty,max=100"`
}

// UpdateItemRequest actualización parcial de un artículo. Los punteros nil no modifican el campo.
type UpdateItemRequest struct {
	Name      *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price     *decimal.Decimal `json:"price"`
	Available *bool            `json:"available"`
	Category  *string          `json:"category"`
}

// ItemResponse salida de un artículo.
type ItemResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Available bool             `json:"available"`
	Category  string           `json:"category,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
