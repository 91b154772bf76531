package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stockroom-api/internal/domain"
)

func TestMapInventoryWriteError(t *testing.T) {
	assert.NoError(t, mapInventoryWriteError(nil))
	assert.ErrorIs(t, mapInventoryWriteError(&pgconn.PgError{Code: codeCheckViolation}), domain.ErrInsufficientStock)
	assert.ErrorIs(t, mapInventoryWriteError(&pgconn.PgError{Code: codeForeignKeyViolation}), domain.ErrNotFound)
	assert.ErrorIs(t, mapInventoryWriteError(&pgconn.PgError{Code: codeNumericOutOfRange}), domain.ErrInvalidInput)

	other := errors.New("conexión perdida")
	assert.ErrorIs(t, mapInventoryWriteError(other), other)
}

func TestMapProductWriteError(t *testing.T) {
	assert.ErrorIs(t, mapProductWriteError("insert product", &pgconn.PgError{Code: codeUniqueViolation}), domain.ErrDuplicate)
	assert.ErrorIs(t, mapProductWriteError("insert product", &pgconn.PgError{Code: codeForeignKeyViolation}), domain.ErrUnknownCategory)
	assert.ErrorIs(t, mapProductWriteError("insert product", &pgconn.PgError{Code: codeNumericOutOfRange}), domain.ErrInvalidInput)
}

func TestMapMovementWriteError(t *testing.T) {
	userFK := &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "stock_movements_user_id_fkey"}
	productFK := &pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "stock_movements_product_id_fkey"}

	assert.NoError(t, mapMovementWriteError(nil))
	assert.ErrorIs(t, mapMovementWriteError(userFK), domain.ErrUserNotFound)
	assert.ErrorIs(t, mapMovementWriteError(fmt.Errorf("exec: %w", userFK)), domain.ErrUserNotFound)
	assert.ErrorIs(t, mapMovementWriteError(productFK), domain.ErrNotFound)
	assert.NotErrorIs(t, mapMovementWriteError(productFK), domain.ErrUserNotFound)
}
