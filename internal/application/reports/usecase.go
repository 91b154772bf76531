// Package reports genera el reporte de inventario descargable en PDF.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// reportMovementLimit tope de movimientos incluidos en un reporte.
const reportMovementLimit = 1000

// ReportUseCase reúne valor, stock bajo y movimientos del período y delega el render.
type ReportUseCase struct {
	dashboardRepo repository.DashboardRepository
	movementRepo  repository.StockMovementRepository
	generator     InventoryReportGenerator
	now           func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	dashboardRepo repository.DashboardRepository,
	movementRepo repository.StockMovementRepository,
	generator InventoryReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		dashboardRepo: dashboardRepo,
		movementRepo:  movementRepo,
		generator:     generator,
		now:           time.Now,
	}
}

// InventoryReport devuelve los bytes del PDF y el nombre de archivo sugerido.
// Un rango inválido se rechaza antes de consultar.
func (uc *ReportUseCase) InventoryReport(ctx context.Context, q dto.DateRangeQuery) (pdfBytes []byte, filename string, err error) {
	rng, err := domain.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return nil, "", err
	}

	total, err := uc.dashboardRepo.TotalInventoryValue(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: valor de inventario: %w", err)
	}
	lowStock, err := uc.dashboardRepo.ListLowStock(ctx, rng)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: stock bajo: %w", err)
	}
	movements, err := uc.movementRepo.List(ctx, repository.StockMovementFilter{Range: rng, Limit: reportMovementLimit})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: movimientos: %w", err)
	}

	now := uc.now().UTC()
	pdfBytes, err = uc.generator.GenerateInventoryReport(ctx, InventoryReportData{
		Range:       rng,
		GeneratedAt: now,
		TotalValue:  total.Round(2),
		LowStock:    lowStock,
		Movements:   movements,
	})
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, fmt.Sprintf("inventario_%s.pdf", now.Format("20060102_1504")), nil
}
