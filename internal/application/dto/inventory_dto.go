package dto

// AdjustStockRequest body para POST /api/inventory/update.
type AdjustStockRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,max=2147483647"`
	Type      string `json:"type" validate:"required,oneof=ADD REMOVE"`
	Notes     string `json:"notes" validate:"max=500"`
}

// AdjustStockResponse resultado de un ajuste aplicado.
type AdjustStockResponse struct {
	Message   string `json:"message"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// InventoryItemResponse fila de inventario unida con el producto.
type InventoryItemResponse struct {
	InventoryID  string `json:"inventoryId"`
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimumStock"`
	LowStock     bool   `json:"lowStock"`
}
