package routers

import (
	"context"
	"time"

	"github.com/Xenn-00/vorgang-meister/internal/metrics"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

const readinessTimeout = 2 * time.Second

// HealthRouter registriert Health- und Readiness-Endpoints auf dem gegebenen Fiber-Router.
//   - GET /healthz: JSON-Statusinformation
//   - GET /livez:   einfache Liveness-Antwort als Text
//   - GET /readyz:  prüft jede Abhängigkeit in checks, bei einem Fehler 503
func HealthRouter(app fiber.Router, checks map[string]HealthCheck) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "Health-OK",
			"message": "Service lebt.",
		})
	})

	app.Get("/livez", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Lebt.")
	})

	app.Get("/readyz", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
		defer cancel()

		failed := fiber.Map{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Warn().Err(err).Str("dependency", name).Msg("Readiness-Check fehlgeschlagen")
				failed[name] = "nicht bereit"
			}
		}

		if len(failed) > 0 {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "Fehlversuch",
				"error":  failed,
			})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "Bereit",
			"message": "Datenbank und App sind einsatzbereit.",
		})
	})
}

// MetricsRouter hängt den Prometheus-Handler über den Fiber-Adapter ein.
func MetricsRouter(app fiber.Router, g prometheus.Gatherer) {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(g)))
}
