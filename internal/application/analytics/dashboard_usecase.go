// Package analytics contiene los casos de uso de solo lectura del tablero de inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen del tablero: productos con stock bajo y valor total.
//
// Fuente de datos: DashboardRepository (consultas read-only, sin bloqueos).
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

// GetSummary valida el rango y luego lanza las dos consultas en paralelo:
//  1. ListLowStock(rango)    → LowStock
//  2. TotalInventoryValue()  → TotalInventoryValue
//
// Un rango inválido se rechaza antes de tocar el almacén.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, q dto.DateRangeQuery) (*dto.DashboardResponse, error) {
	rng, err := domain.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, err
	}

	type lowStockResult struct {
		items []entity.InventoryItem
		err   error
	}
	type valueResult struct {
		total decimal.Decimal
		err   error
	}

	lowCh := make(chan lowStockResult, 1)
	valueCh := make(chan valueResult, 1)

	go func() {
		items, err := uc.dashboardRepo.ListLowStock(ctx, rng)
		lowCh <- lowStockResult{items, err}
	}()
	go func() {
		total, err := uc.dashboardRepo.TotalInventoryValue(ctx)
		valueCh <- valueResult{total, err}
	}()

	low := <-lowCh
	value := <-valueCh

	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}
	if value.err != nil {
		return nil, fmt.Errorf("dashboard: valor de inventario: %w", value.err)
	}

	lowStock := make([]dto.InventoryItemResponse, 0, len(low.items))
	for _, it := range low.items {
		lowStock = append(lowStock, dto.InventoryItemResponse{
			InventoryID:  it.InventoryID,
			ProductID:    it.ProductID,
			Name:         it.Name,
			SKU:          it.SKU,
			Quantity:     it.Quantity,
			MinimumStock: it.MinimumStock,
			LowStock:     true,
		})
	}
	return &dto.DashboardResponse{
		LowStock:            lowStock,
		TotalInventoryValue: value.total.Round(2),
	}, nil
}
