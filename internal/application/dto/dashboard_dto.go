package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	LowStock            []InventoryItemResponse `json:"lowStock"`
	TotalInventoryValue decimal.Decimal         `json:"totalInventoryValue"`
}
