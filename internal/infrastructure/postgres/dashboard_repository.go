package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only del tablero sobre PostgreSQL.
type DashboardRepo struct {
	q       Querier
	timeout time.Duration
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier, timeout time.Duration) *DashboardRepo {
	return &DashboardRepo{q: q, timeout: timeout}
}

// ListLowStock productos con quantity <= minimum_stock; con rango, solo los que tienen un
// movimiento dentro de él.
func (r *DashboardRepo) ListLowStock(ctx context.Context, rng *domain.DateRange) ([]entity.InventoryItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		SELECT i.id, i.product_id, p.name, p.sku, i.quantity, p.minimum_stock
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.quantity <= p.minimum_stock`
	var args []any
	if rng != nil {
		query += `
		  AND EXISTS (
		      SELECT 1 FROM stock_movements sm
		      WHERE sm.product_id = p.id AND sm.created_at BETWEEN $1 AND $2)`
		args = append(args, rng.Start, rng.End)
	}
	query += ` ORDER BY p.name, p.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return collectInventoryItems(rows)
}

// TotalInventoryValue SUM(quantity * price) sobre todas las filas de inventario.
func (r *DashboardRepo) TotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		SELECT COALESCE(SUM(i.quantity * p.price), 0)
		FROM inventory i
		JOIN products p ON p.id = i.product_id`
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("total inventory value: %w", err)
	}
	return total, nil
}
