package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeAdd    = "ADD"
	MovementTypeRemove = "REMOVE"
)

// StockMovement registro inmutable de un ajuste de inventario (libro append-only).
// Quantity es siempre positiva; Type indica la dirección.
type StockMovement struct {
	ID        string
	ProductID string
	Quantity  int
	Type      string
	Notes     string
	UserID    string
	CreatedAt time.Time
}

// StockMovementView movimiento unido con producto y usuario para listados y reportes.
type StockMovementView struct {
	StockMovement
	ProductName string
	SKU         string
	Username    string
}
