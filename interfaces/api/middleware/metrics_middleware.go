package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"study-tracker/pkg/metrics"
)

// MetricsMiddleware records one observation per request, labelled by the
// matched route pattern so that /api/tasks/:id stays a single series.
func MetricsMiddleware(recorder metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		// after c.Next() Route() is the last route that ran
		route := c.Route().Path
		if status == fiber.StatusNotFound && route == "/" && c.Path() != "/" {
			route = "unmatched"
		}
		recorder.RecordHTTPRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
