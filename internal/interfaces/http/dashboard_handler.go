package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockroom-api/internal/application/analytics"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los productos con stock bajo y el valor total del inventario.
// GET /api/dashboard?startDate=&endDate=
//
// Con rango, el stock bajo se limita a productos con al menos un movimiento dentro de él.
// El valor total siempre es el actual.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	var q dto.DateRangeQuery
	if e := parseQuery(c, &q); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	summary, err := h.uc.GetSummary(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
