package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// InventoryRepository define el puerto para la cantidad materializada por producto.
type InventoryRepository interface {
	// GetForUpdate lee y bloquea la fila de inventario. Si no existe devuelve una fila
	// con Quantity 0 e ID vacío.
	GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error)
	// Upsert inserta o actualiza la cantidad del producto.
	Upsert(ctx context.Context, inv *entity.Inventory) error
	List(ctx context.Context) ([]entity.InventoryItem, error)
}
