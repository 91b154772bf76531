package dto

import "time"

// StockMovementQuery parámetros de GET /api/stock-movements.
type StockMovementQuery struct {
	DateRangeQuery
	ProductID string `query:"productId" validate:"omitempty,uuid"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=1000"`
}

// StockMovementResponse movimiento con producto y usuario resueltos.
type StockMovementResponse struct {
	MovementID  string    `json:"movementId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	Type        string    `json:"type"`
	Notes       string    `json:"notes"`
	Username    string    `json:"username"`
	CreatedAt   time.Time `json:"createdAt"`
}
