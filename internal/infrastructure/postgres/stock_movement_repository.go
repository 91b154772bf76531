package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL (solo INSERT y SELECT).
type StockMovementRepo struct {
	q       Querier
	timeout time.Duration
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier, timeout time.Duration) *StockMovementRepo {
	return &StockMovementRepo{q: q, timeout: timeout}
}

// Create agrega un movimiento al libro.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		INSERT INTO stock_movements (id, product_id, quantity, type, notes, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Quantity, m.Type, m.Notes, m.UserID, m.CreatedAt)
	return mapMovementWriteError(err)
}

// mapMovementWriteError distingue la FK de usuario (token de un usuario ya eliminado)
// de la FK de producto.
func mapMovementWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isForeignKeyViolation(err) && strings.Contains(pgConstraint(err), "user_id"):
		return domain.ErrUserNotFound
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	case isNumericOutOfRange(err):
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("insert stock movement: %w", err)
}

// List devuelve los movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.StockMovementFilter) ([]entity.StockMovementView, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var (
		where []string
		args  []any
	)
	if f.Range != nil {
		args = append(args, f.Range.Start, f.Range.End)
		where = append(where, fmt.Sprintf("sm.created_at BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		where = append(where, fmt.Sprintf("sm.product_id = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT sm.id, sm.product_id, p.name, p.sku, sm.quantity, sm.type, sm.notes,
		       sm.user_id, COALESCE(u.username, ''), sm.created_at
		FROM stock_movements sm
		JOIN products p ON p.id = sm.product_id
		LEFT JOIN users u ON u.id = sm.user_id`)
	if len(where) > 0 {
		sb.WriteString("\n\t\tWHERE " + strings.Join(where, " AND "))
	}
	sb.WriteString("\n\t\tORDER BY sm.created_at DESC, sm.id DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		sb.WriteString(fmt.Sprintf("\n\t\tLIMIT $%d", len(args)))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := make([]entity.StockMovementView, 0)
	for rows.Next() {
		var v entity.StockMovementView
		if err := rows.Scan(
			&v.ID, &v.ProductID, &v.ProductName, &v.SKU, &v.Quantity, &v.Type, &v.Notes,
			&v.UserID, &v.Username, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
