package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
	"github.com/jhoicas/stockroom-api/internal/application/reports"
	"github.com/jhoicas/stockroom-api/internal/application/usecase"
	"github.com/jhoicas/stockroom-api/internal/domain"
	apphttp "github.com/jhoicas/stockroom-api/internal/interfaces/http"
	"github.com/jhoicas/stockroom-api/internal/testutil/memstore"
)

const (
	adminUser     = "admin"
	adminPassword = "correcta-123"
)

type fakePDF struct{}

func (fakePDF) GenerateInventoryReport(_ context.Context, _ reports.InventoryReportData) ([]byte, error) {
	return []byte("%PDF-1.4 test"), nil
}

type testServer struct {
	app   *fiber.App
	store *memstore.Store
}

// newTestServer arma la API completa sobre el almacén en memoria con un usuario admin.
func newTestServer(t *testing.T, loginPerMinute int) *testServer {
	t.Helper()
	s := memstore.New()
	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	_, err := authUC.SaveUser(context.Background(), adminUser, adminPassword, "admin@example.com")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:         authUC,
		CategoryUC:     usecase.NewCategoryUseCase(s.Categories()),
		ProductUC:      usecase.NewProductUseCase(s.Products(), s.Categories()),
		AdjustUC:       inventory.NewAdjustStockUseCase(s.TxRunner()),
		QueryUC:        inventory.NewQueryUseCase(s.Inventory(), s.Movements()),
		DashboardUC:    appanalytics.NewDashboardUseCase(s.Dashboard()),
		ReportUC:       reports.NewReportUseCase(s.Dashboard(), s.Movements(), fakePDF{}),
		JWTSecret:      testJWTSecret,
		ServiceName:    "stockroom-test",
		LoginPerMinute: loginPerMinute,
	})
	return &testServer{app: app, store: s}
}

// call hace la petición y devuelve la respuesta con el body ya leído.
func (ts *testServer) call(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, out
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	resp, body := ts.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": adminUser, "password": adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Code
}

// seedProduct crea categoría y producto vía API y devuelve el id del producto.
func (ts *testServer) seedProduct(t *testing.T, token, sku string, price float64, minimum int) (categoryID, productID string) {
	t.Helper()
	resp, body := ts.call(t, http.MethodPost, "/api/categories", token, fiber.Map{"name": "Herramientas " + sku})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var cat dto.CategoryResponse
	require.NoError(t, json.Unmarshal(body, &cat))

	resp, body = ts.call(t, http.MethodPost, "/api/products", token, fiber.Map{
		"name": "Producto " + sku, "sku": sku, "categoryId": cat.ID, "price": price, "minimumStock": minimum,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var p map[string]any
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, cat.Name, p["categoryName"])
	assert.InDelta(t, price, p["price"], 0.0001, "el precio se serializa como número")
	return cat.ID, p["id"].(string)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t, 100)

	resp, body := ts.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": adminUser, "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
	assert.NotContains(t, string(body), "token")

	resp, body = ts.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": "nadie", "password": adminPassword})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))

	resp, body = ts.call(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"username": adminUser})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	token := ts.login(t)
	resp, body = ts.call(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me dto.UserResponse
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, adminUser, me.Username)
	assert.Equal(t, "admin@example.com", me.Email)
}

func TestLogin_RateLimit(t *testing.T) {
	ts := newTestServer(t, 2)
	creds := fiber.Map{"username": adminUser, "password": "incorrecta"}

	for i := 0; i < 2; i++ {
		resp, _ := ts.call(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	resp, body := ts.call(t, http.MethodPost, "/api/auth/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "TOO_MANY_ATTEMPTS", errorCode(t, body))
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	ts := newTestServer(t, 100)
	paths := []string{"/api/auth/me", "/api/categories", "/api/products", "/api/inventory", "/api/stock-movements", "/api/dashboard", "/api/reports/inventory"}
	for _, p := range paths {
		resp, body := ts.call(t, http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, p)
		assert.Equal(t, "MISSING_TOKEN", errorCode(t, body), p)
	}
}

func TestInventoryFlow(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)
	_, productID := ts.seedProduct(t, token, "MAR-1", 10, 5)

	resp, body := ts.call(t, http.MethodPost, "/api/inventory/update", token, fiber.Map{"productId": productID, "quantity": 8, "type": "ADD", "notes": "compra"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var adj dto.AdjustStockResponse
	require.NoError(t, json.Unmarshal(body, &adj))
	assert.Equal(t, 8, adj.Quantity)
	assert.Equal(t, productID, adj.ProductID)

	// Alias usado por la SPA.
	resp, body = ts.call(t, http.MethodPost, "/api/inventory", token, fiber.Map{"productId": productID, "quantity": 3, "type": "REMOVE"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &adj))
	assert.Equal(t, 5, adj.Quantity)

	resp, body = ts.call(t, http.MethodPost, "/api/inventory/update", token, fiber.Map{"productId": productID, "quantity": 6, "type": "REMOVE"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, body))

	qty, ok := ts.store.Quantity(productID)
	require.True(t, ok)
	assert.Equal(t, 5, qty)
	assert.Equal(t, 2, ts.store.MovementCount())

	resp, body = ts.call(t, http.MethodGet, "/api/inventory", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []dto.InventoryItemResponse
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, items[0].LowStock)

	resp, body = ts.call(t, http.MethodGet, "/api/stock-movements", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(body, &movs))
	require.Len(t, movs, 2)
	assert.Equal(t, adminUser, movs[0].Username)
	assert.Equal(t, "MAR-1", movs[0].SKU)

	resp, body = ts.call(t, http.MethodGet, "/api/dashboard", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash map[string]any
	require.NoError(t, json.Unmarshal(body, &dash))
	assert.InDelta(t, 50.0, dash["totalInventoryValue"], 0.0001)
	assert.Len(t, dash["lowStock"], 1)
}

func TestAdjust_Validation(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)
	_, productID := ts.seedProduct(t, token, "VAL-1", 1, 0)

	cases := []struct {
		name   string
		body   fiber.Map
		status int
		code   string
	}{
		{"tipo inválido", fiber.Map{"productId": productID, "quantity": 1, "type": "MOVE"}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", fiber.Map{"productId": productID, "quantity": 0, "type": "ADD"}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad negativa", fiber.Map{"productId": productID, "quantity": -2, "type": "ADD"}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad decimal", fiber.Map{"productId": productID, "quantity": 1.5, "type": "ADD"}, http.StatusBadRequest, "INVALID_BODY"},
		{"cantidad fuera de INTEGER", fiber.Map{"productId": productID, "quantity": 2147483648, "type": "ADD"}, http.StatusBadRequest, "VALIDATION"},
		{"producto no uuid", fiber.Map{"productId": "abc", "quantity": 1, "type": "ADD"}, http.StatusBadRequest, "VALIDATION"},
		{"producto inexistente", fiber.Map{"productId": "7f1c6c2e-0d55-4a8e-9a39-5b7d8f0e2a11", "quantity": 1, "type": "ADD"}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, body := ts.call(t, http.MethodPost, "/api/inventory/update", token, tc.body)
			assert.Equal(t, tc.status, resp.StatusCode, string(body))
			assert.Equal(t, tc.code, errorCode(t, body))
		})
	}
	assert.Equal(t, 0, ts.store.MovementCount())
}

func TestAdjust_OverflowIsValidation(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)
	_, productID := ts.seedProduct(t, token, "OVF-1", 1, 0)

	resp, body := ts.call(t, http.MethodPost, "/api/inventory/update", token,
		fiber.Map{"productId": productID, "quantity": 2, "type": "ADD"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = ts.call(t, http.MethodPost, "/api/inventory/update", token,
		fiber.Map{"productId": productID, "quantity": 2147483647, "type": "ADD"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, string(body))
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	qty, _ := ts.store.Quantity(productID)
	assert.Equal(t, 2, qty)
	assert.Equal(t, 1, ts.store.MovementCount())
}

func TestAdjust_DeletedUserIsNotFound(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)
	_, productID := ts.seedProduct(t, token, "DEL-1", 1, 0)

	ts.store.FailMovementCreate = domain.ErrUserNotFound
	resp, body := ts.call(t, http.MethodPost, "/api/inventory/update", token,
		fiber.Map{"productId": productID, "quantity": 3, "type": "ADD"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))
	assert.Equal(t, "USER_NOT_FOUND", errorCode(t, body))
	assert.Equal(t, 0, ts.store.MovementCount())
}

func TestDateRangeValidation(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)

	for _, p := range []string{"/api/dashboard", "/api/stock-movements", "/api/reports/inventory"} {
		resp, body := ts.call(t, http.MethodGet, p+"?startDate=2024-02-01&endDate=2024-01-01", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, p)
		assert.Equal(t, "INVALID_DATE_RANGE", errorCode(t, body), p)

		resp, body = ts.call(t, http.MethodGet, p+"?startDate=2024-02-01", token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, p)
		assert.Equal(t, "INVALID_DATE", errorCode(t, body), p)
	}

	resp, _ := ts.call(t, http.MethodGet, "/api/dashboard?startDate=2024-01-01&endDate=2024-01-31", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategoryAndProductErrors(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)
	categoryID, productID := ts.seedProduct(t, token, "DUP-1", 3.5, 1)

	resp, body := ts.call(t, http.MethodDelete, "/api/categories/"+categoryID, token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CATEGORY_IN_USE", errorCode(t, body))

	resp, body = ts.call(t, http.MethodPost, "/api/products", token, fiber.Map{"name": "Otro", "sku": "dup-1", "categoryId": categoryID, "price": 1})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, body))

	resp, body = ts.call(t, http.MethodPost, "/api/products", token, fiber.Map{"name": "Otro", "sku": "NEW-1", "categoryId": "7f1c6c2e-0d55-4a8e-9a39-5b7d8f0e2a11", "price": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_CATEGORY", errorCode(t, body))

	resp, body = ts.call(t, http.MethodPost, "/api/products", token, fiber.Map{"name": "Otro", "sku": "NEW-2", "categoryId": categoryID, "price": -1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, body))

	resp, body = ts.call(t, http.MethodPut, "/api/products/"+productID, token, fiber.Map{"minimumStock": 9})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var p dto.ProductResponse
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 9, p.MinimumStock)
	assert.Equal(t, "DUP-1", p.SKU)

	resp, body = ts.call(t, http.MethodGet, "/api/products/no-es-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", errorCode(t, body))

	resp, body = ts.call(t, http.MethodGet, "/api/categories/7f1c6c2e-0d55-4a8e-9a39-5b7d8f0e2a11", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))
}

func TestInventoryReport_PDF(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t)

	resp, body := ts.call(t, http.MethodGet, "/api/reports/inventory?startDate=2024-01-01&endDate=2024-01-31", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `attachment; filename="inventario_`)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, 100)
	resp, body := ts.call(t, http.MethodGet, "/api/no-existe", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "ROUTE_NOT_FOUND", errorCode(t, body))
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/up", apphttp.Health("svc", pinger{}))
	app.Get("/down", apphttp.Health("svc", pinger{err: errors.New("sin conexión")}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/up", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/down", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "down", body["db"])
}

func TestErrorHandler_OcultaCausaInterna(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("pq: password authentication failed") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "INTERNAL", errorCode(t, body))
	assert.NotContains(t, string(body), "password")
}
