package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q       Querier
	timeout time.Duration
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier, timeout time.Duration) *InventoryRepo {
	return &InventoryRepo{q: q, timeout: timeout}
}

// GetForUpdate obtiene la fila de inventario y la bloquea (SELECT FOR UPDATE).
// Sin fila devuelve cantidad 0 e ID vacío.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		SELECT id, product_id, quantity, created_at, updated_at
		FROM inventory WHERE product_id = $1
		FOR UPDATE`
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&inv.ID, &inv.ProductID, &inv.Quantity, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Inventory{ProductID: productID}, nil
		}
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return &inv, nil
}

// Upsert inserta o actualiza la cantidad del producto (una fila por producto).
func (r *InventoryRepo) Upsert(ctx context.Context, inv *entity.Inventory) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		INSERT INTO inventory (id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, inv.ID, inv.ProductID, inv.Quantity, inv.CreatedAt, inv.UpdatedAt)
	return mapInventoryWriteError(err)
}

func mapInventoryWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case isCheckViolation(err):
		return domain.ErrInsufficientStock
	case isForeignKeyViolation(err):
		return domain.ErrNotFound
	case isNumericOutOfRange(err):
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("upsert inventory: %w", err)
}

// List devuelve el inventario unido con el producto.
func (r *InventoryRepo) List(ctx context.Context) ([]entity.InventoryItem, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	query := `
		SELECT i.id, i.product_id, p.name, p.sku, i.quantity, p.minimum_stock
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY p.name, p.id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return collectInventoryItems(rows)
}

func collectInventoryItems(rows pgx.Rows) ([]entity.InventoryItem, error) {
	defer rows.Close()
	out := make([]entity.InventoryItem, 0)
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.InventoryID, &it.ProductID, &it.Name, &it.SKU, &it.Quantity, &it.MinimumStock); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
