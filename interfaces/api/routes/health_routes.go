package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"

	"study-tracker/pkg/metrics"
)

// HealthCheck probes one optional dependency (redis, nats)
type HealthCheck func(ctx context.Context) error

func SetupHealthRoutes(app *fiber.App, serviceName string, checks map[string]HealthCheck) {
	if serviceName == "" {
		serviceName = "Study Tracker API"
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		// dependency ที่ล่มไม่ทำให้ API ใช้ไม่ได้ จึงตอบ "degraded" ไม่ใช่ 503
		status := "ok"
		results := make(fiber.Map, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = "degraded"
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		return c.JSON(fiber.Map{
			"status":  status,
			"message": "Server is running",
			"service": serviceName,
			"checks":  results,
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to " + serviceName,
			"version": "1.0.0",
			"docs":    "/api",
			"health":  "/health",
		})
	})
}

func SetupMetricsRoutes(app *fiber.App, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		return
	}
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(gatherer)))
}
