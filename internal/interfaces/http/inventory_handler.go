package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/application/inventory"
)

// InventoryHandler maneja inventario y movimientos de stock (protegido).
type InventoryHandler struct {
	adjust *inventory.AdjustStockUseCase
	query  *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(adjust *inventory.AdjustStockUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjust: adjust, query: query}
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.InventoryItemResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.query.ListInventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock (ADD / REMOVE)
// @Description  Actualiza la cantidad del producto y registra el movimiento en una sola transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productId, quantity, type, notes"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/update [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	res, err := h.adjust.AdjustStock(c.UserContext(), inventory.AdjustmentInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Notes:     in.Notes,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{
		Message:   "inventario actualizado",
		ProductID: res.ProductID,
		Quantity:  res.Quantity,
	})
}

// ListMovements godoc
// @Summary      Listar movimientos de stock
// @Description  Más recientes primero. startDate y endDate (YYYY-MM-DD o RFC3339) se envían juntos.
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        startDate  query     string  false  "inicio del rango"
// @Param        endDate    query     string  false  "fin del rango (inclusive)"
// @Param        productId  query     string  false  "filtrar por producto"
// @Param        limit      query     int     false  "máximo de filas (default 500, máx 1000)"
// @Success      200        {array}   dto.StockMovementResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.StockMovementQuery
	if e := parseQuery(c, &q); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.query.ListMovements(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
