package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/reports"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

func TestGenerateInventoryReport(t *testing.T) {
	now := time.Date(2025, 3, 31, 18, 0, 0, 0, time.UTC)
	data := reports.InventoryReportData{
		Range:       &domain.DateRange{Start: now.AddDate(0, 0, -30), End: now},
		GeneratedAt: now,
		TotalValue:  decimal.RequireFromString("35.50"),
		LowStock: []entity.InventoryItem{
			{ProductID: "p1", Name: "Agua", SKU: "AGUA-1", Quantity: 1, MinimumStock: 5},
		},
		Movements: []entity.StockMovementView{
			{
				StockMovement: entity.StockMovement{ID: "m1", ProductID: "p1", Quantity: 3, Type: entity.MovementTypeRemove, CreatedAt: now},
				ProductName:   "Agua", SKU: "AGUA-1", Username: "bodega",
			},
		},
	}

	out, err := NewMarotoReportGenerator("stockroom-api").GenerateInventoryReport(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerateInventoryReport_Empty(t *testing.T) {
	out, err := NewMarotoReportGenerator("stockroom-api").GenerateInventoryReport(context.Background(), reports.InventoryReportData{
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "todo el historial", periodLabel(nil))
	r := &domain.DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC),
	}
	assert.Equal(t, "01/01/2025 - 31/01/2025", periodLabel(r))
}
