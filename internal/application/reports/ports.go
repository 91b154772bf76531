package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// InventoryReportData datos ya resueltos que se pintan en el reporte.
type InventoryReportData struct {
	Range       *domain.DateRange // nil = sin filtro de fechas
	GeneratedAt time.Time
	TotalValue  decimal.Decimal
	LowStock    []entity.InventoryItem
	Movements   []entity.StockMovementView
}

// InventoryReportGenerator puerto para renderizar el reporte (implementado en infrastructure/pdf).
type InventoryReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, data InventoryReportData) ([]byte, error)
}
