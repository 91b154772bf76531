package inventory

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 500
	maxMovementLimit     = 1000
)

// QueryUseCase lecturas de inventario y del libro de movimientos (sin bloqueos).
type QueryUseCase struct {
	inventoryRepo repository.InventoryRepository
	movementRepo  repository.StockMovementRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(inventoryRepo repository.InventoryRepository, movementRepo repository.StockMovementRepository) *QueryUseCase {
	return &QueryUseCase{inventoryRepo: inventoryRepo, movementRepo: movementRepo}
}

// ListInventory devuelve las filas de inventario unidas con el producto.
func (uc *QueryUseCase) ListInventory(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	items, err := uc.inventoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.InventoryItemResponse{
			InventoryID:  it.InventoryID,
			ProductID:    it.ProductID,
			Name:         it.Name,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			MinimumStock: it.MinimumStock,
			LowStock:     it.LowStock(),
		})
	}
	return out, nil
}

// ListMovements valida el rango antes de consultar y devuelve los movimientos del más
// reciente al más antiguo.
func (uc *QueryUseCase) ListMovements(ctx context.Context, q dto.StockMovementQuery) ([]dto.StockMovementResponse, error) {
	rng, err := domain.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	if limit > maxMovementLimit {
		limit = maxMovementLimit
	}
	views, err := uc.movementRepo.List(ctx, repository.StockMovementFilter{
		Range:     rng,
		ProductID: q.ProductID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.StockMovementResponse{
			MovementID:  v.ID,
			ProductID:   v.ProductID,
			ProductName: v.ProductName,
			SKU:         v.SKU,
			Quantity:    v.Quantity,
			Type:        v.Type,
			Notes:       v.Notes,
			Username:    v.Username,
			CreatedAt:   v.CreatedAt,
		})
	}
	return out, nil
}
