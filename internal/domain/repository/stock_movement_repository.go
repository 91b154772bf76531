package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// StockMovementFilter criterios de listado; Range nil = sin filtro de fechas.
type StockMovementFilter struct {
	Range     *domain.DateRange
	ProductID string
	Limit     int
}

// StockMovementRepository define el puerto del libro de movimientos (append-only: sin Update ni Delete).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter StockMovementFilter) ([]entity.StockMovementView, error)
}
