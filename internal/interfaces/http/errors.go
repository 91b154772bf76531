package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
)

const internalMessage = "error interno del servidor"

// domainErrors traduce errores de dominio a status HTTP y cuerpo de error.
var domainErrors = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrInvalidDateFormat, fiber.StatusBadRequest, "INVALID_DATE", "formato de fecha inválido: use YYYY-MM-DD o RFC3339 y envíe startDate y endDate juntos"},
	{domain.ErrInvalidDateRange, fiber.StatusBadRequest, "INVALID_DATE_RANGE", "startDate no puede ser posterior a endDate"},
	{domain.ErrUnknownCategory, fiber.StatusBadRequest, "UNKNOWN_CATEGORY", "la categoría no existe"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"},
}

// writeError responde con el status correspondiente al error de dominio. Cualquier otro
// error es un 500 genérico; la causa solo queda en el log.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage})
}

// ErrorHandler es el fiber.Config.ErrorHandler de la API: los *fiber.Error conservan su
// status; lo demás (incluidos panics recuperados) se responde como 500 genérico.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "HTTP_ERROR"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "ROUTE_NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			return internalError(c, err)
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return internalError(c, err)
}
