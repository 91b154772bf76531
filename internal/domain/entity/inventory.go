package entity

import "time"

// Inventory es la cantidad materializada de un producto (una fila por producto).
// Se crea de forma perezosa con el primer ajuste.
type Inventory struct {
	ID        string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryItem fila de inventario unida con los datos del producto.
type InventoryItem struct {
	InventoryID  string
	ProductID    string
	Name         string
	SKU          string
	Quantity     int
	MinimumStock int
}

// LowStock indica si la cantidad está en o por debajo del mínimo configurado.
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinimumStock
}
