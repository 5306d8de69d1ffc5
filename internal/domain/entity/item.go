package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item es un artículo solicitable del catálogo (bebidas, snacks).
type Item struct {
	ID        string
	Name      string           // único
	Price     *decimal.Decimal // nil = gratis
	Available bool
	Category  string // opcional, ej. "Beverage", "Snack"
	CreatedAt time.Time
}
