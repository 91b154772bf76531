package usecase_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/testutil/memstore"
)

func TestCategoryUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	uc := usecase.NewCategoryUseCase(s.Categories())

	created, err := uc.Create(ctx, dto.CategoryRequest{Name: " Lácteos ", Description: "Fríos"})
	require.NoError(t, err)
	assert.Equal(t, "Lácteos", created.Name)

	_, err = uc.Create(ctx, dto.CategoryRequest{Name: "Aseo"})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Aseo", list[0].Name)

	updated, err := uc.Update(ctx, created.ID, dto.CategoryRequest{Name: "Lácteos y huevos"})
	require.NoError(t, err)
	assert.Equal(t, "Lácteos y huevos", updated.Name)
	assert.Empty(t, updated.Description)

	_, err = uc.Update(ctx, uuid.NewString(), dto.CategoryRequest{Name: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestCategoryUseCase_DeleteInUse(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	categories := usecase.NewCategoryUseCase(s.Categories())
	products := usecase.NewProductUseCase(s.Products(), s.Categories())

	cat, err := categories.Create(ctx, dto.CategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)
	_, err = products.Create(ctx, dto.CreateProductRequest{Name: "Martillo", SKU: "MAR-1", CategoryID: cat.ID, Price: decimal.NewFromInt(20)})
	require.NoError(t, err)

	assert.ErrorIs(t, categories.Delete(ctx, cat.ID), domain.ErrConflict)
}

func TestProductUseCase_Create(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	cat, err := usecase.NewCategoryUseCase(s.Categories()).Create(ctx, dto.CategoryRequest{Name: "Papelería"})
	require.NoError(t, err)
	uc := usecase.NewProductUseCase(s.Products(), s.Categories())

	p, err := uc.Create(ctx, dto.CreateProductRequest{
		Name: "Cuaderno", SKU: " cua-100 ", CategoryID: cat.ID,
		Price: decimal.RequireFromString("3.25"), MinimumStock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "CUA-100", p.SKU)
	assert.Equal(t, "Papelería", p.CategoryName)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Otro", SKU: "CUA-100", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Otro", SKU: "X-1", CategoryID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Otro", SKU: "X-2", CategoryID: cat.ID, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, bad := range []dto.CreateProductRequest{
		{Name: "Otro", SKU: "X-3", CategoryID: cat.ID, Price: decimal.RequireFromString("10.005")},
		{Name: "Otro", SKU: "X-4", CategoryID: cat.ID, Price: decimal.RequireFromString("1000000000000")},
		{Name: "Otro", SKU: "X-5", CategoryID: cat.ID, Price: decimal.NewFromInt(1), MinimumStock: math.MaxInt32 + 1},
	} {
		_, err = uc.Create(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad.SKU)
	}

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProductUseCase_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	cats := usecase.NewCategoryUseCase(s.Categories())
	a, err := cats.Create(ctx, dto.CategoryRequest{Name: "A"})
	require.NoError(t, err)
	b, err := cats.Create(ctx, dto.CategoryRequest{Name: "B"})
	require.NoError(t, err)
	uc := usecase.NewProductUseCase(s.Products(), s.Categories())
	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Lápiz", SKU: "LAP-1", CategoryID: a.ID, Price: decimal.NewFromInt(1), MinimumStock: 3})
	require.NoError(t, err)

	price := decimal.RequireFromString("1.75")
	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Price: &price, CategoryID: &b.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lápiz", out.Name)
	assert.Equal(t, 3, out.MinimumStock)
	assert.True(t, price.Equal(out.Price))
	assert.Equal(t, "B", out.CategoryName)

	negative := -1
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{MinimumStock: &negative})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tooBig := math.MaxInt32 + 1
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{MinimumStock: &tooBig})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	thirdDecimal := decimal.RequireFromString("1.999")
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Price: &thirdDecimal})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	current, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, price.Equal(current.Price), "un rechazo no modifica el producto")

	_, err = uc.Update(ctx, uuid.NewString(), dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
