package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger es cualquier dependencia que pueda comprobar su conexión (p. ej. *pgxpool.Pool).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde el estado del servicio y de la base de datos.
// Con la base caída responde 503 para que el orquestador deje de enviar tráfico.
func Health(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok", "service": service, "db": "up"}
		if db == nil {
			body["db"] = "unknown"
			return c.JSON(body)
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			body["status"] = "degraded"
			body["db"] = "down"
			return c.Status(fiber.StatusServiceUnavailable).JSON(body)
		}
		return c.JSON(body)
	}
}
