package middleware

import (
	"errors"
	"time"

	app_errors "github.com/Xenn-00/vorgang-meister/internal/errors"
	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// MetricsMiddleware zählt Anfragen pro Route-Muster, nicht pro konkretem Pfad.
// Der ErrorHandler läuft erst nach dieser Middleware, daher wird der Status aus dem Fehler gelesen.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		m.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}

func statusOf(err error) int {
	var appErr *app_errors.AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
