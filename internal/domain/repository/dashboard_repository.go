package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// DashboardRepository consultas de solo lectura del tablero.
type DashboardRepository interface {
	// ListLowStock productos con quantity <= minimumStock. Con rng, solo los que tienen
	// al menos un movimiento dentro del intervalo.
	ListLowStock(ctx context.Context, rng *domain.DateRange) ([]entity.InventoryItem, error)
	// TotalInventoryValue suma quantity * price sobre todas las filas de inventario.
	TotalInventoryValue(ctx context.Context) (decimal.Decimal, error)
}
