// Package pdf genera el reporte de inventario descargable.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + período       │  fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: valor total del inventario                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA STOCK BAJO: SKU | Producto | Cantidad | Mínimo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA MOVIMIENTOS: Fecha | SKU | Tipo | Cant. | Usuario     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockroom-api/internal/application/reports"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ reports.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	appName string
}

// NewMarotoReportGenerator construye el generador; appName figura como autor del PDF.
func NewMarotoReportGenerator(appName string) *MarotoReportGenerator {
	return &MarotoReportGenerator{appName: appName}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(_ context.Context, data reports.InventoryReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle(fmt.Sprintf("Productos con stock bajo (%d)", len(data.LowStock))))
	m.AddRows(lowStockHeaderRow())
	m.AddRows(lowStockRows(data.LowStock)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(sectionTitle(fmt.Sprintf("Movimientos del período (%d)", len(data.Movements))))
	m.AddRows(movementHeaderRow())
	m.AddRows(movementRows(data.Movements)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data reports.InventoryReportData) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+periodLabel(data.Range), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+data.GeneratedAt.Format("02/01/2006 15:04")+" UTC", props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func summaryRow(data reports.InventoryReportData) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New("Valor total del inventario:", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 3,
		})),
		col.New(6).Add(text.New("$"+data.TotalValue.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 3,
		})),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(8).Add(col.New(12).Add(text.New(s, props.Text{
		Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
	})))
}

type column struct {
	label string
	size  int
	align align.Type
}

func headerCells(cols []column) core.Row {
	r := row.New(7)
	for _, c := range cols {
		r.Add(col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Top: 1, Left: 1, Right: 1,
		})))
	}
	return r
}

func lowStockHeaderRow() core.Row {
	return headerCells([]column{
		{"SKU", 3, align.Left},
		{"Producto", 5, align.Left},
		{"Cantidad", 2, align.Right},
		{"Mínimo", 2, align.Right},
	})
}

func lowStockRows(items []entity.InventoryItem) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow("Sin productos con stock bajo.")}
	}
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(6).Add(
			col.New(3).Add(text.New(it.SKU, props.Text{Size: 8, Left: 1})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(it.Quantity), props.Text{Size: 8, Align: align.Right, Right: 1, Color: colorAlert})),
			col.New(2).Add(text.New(strconv.Itoa(it.MinimumStock), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	return out
}

func movementHeaderRow() core.Row {
	return headerCells([]column{
		{"Fecha", 3, align.Left},
		{"SKU", 2, align.Left},
		{"Producto", 3, align.Left},
		{"Tipo", 1, align.Center},
		{"Cant.", 1, align.Right},
		{"Usuario", 2, align.Left},
	})
}

func movementRows(movements []entity.StockMovementView) []core.Row {
	if len(movements) == 0 {
		return []core.Row{emptyRow("Sin movimientos en el período.")}
	}
	out := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		qty := strconv.Itoa(mv.Quantity)
		if mv.Type == entity.MovementTypeRemove {
			qty = "-" + qty
		}
		out = append(out, row.New(6).Add(
			col.New(3).Add(text.New(mv.CreatedAt.UTC().Format("02/01/2006 15:04"), props.Text{Size: 8, Left: 1})),
			col.New(2).Add(text.New(mv.SKU, props.Text{Size: 8, Left: 1})),
			col.New(3).Add(text.New(mv.ProductName, props.Text{Size: 8, Left: 1})),
			col.New(1).Add(text.New(mv.Type, props.Text{Size: 7, Align: align.Center})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(mv.Username, "-"), props.Text{Size: 8, Left: 1})),
		))
	}
	return out
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(text.New(msg, props.Text{Size: 8, Color: colorGray, Left: 1})))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func periodLabel(r *domain.DateRange) string {
	if r == nil {
		return "todo el historial"
	}
	return r.Start.Format("02/01/2006") + " - " + r.End.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
