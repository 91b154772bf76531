package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// La cantidad disponible vive en Inventory y solo cambia mediante movimientos.
type Product struct {
	ID           string
	Name         string
	SKU          string // único
	Description  string
	CategoryID   string
	CategoryName string // solo lectura (JOIN con categories)
	Price        decimal.Decimal
	MinimumStock int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
