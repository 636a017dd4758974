package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/heritage-catalog/internal/pkg/metrics"
)

// Metrics - счётчики и латентность запросов в Prometheus.
// route берётся из шаблона маршрута, а не из фактического пути.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.APIActiveRequests.Inc()
		defer metrics.APIActiveRequests.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else if status < fiber.StatusBadRequest {
				status = fiber.StatusInternalServerError
			}
		}

		metrics.RecordAPIRequest(c.Method(), routeLabel(c), status, time.Since(start))
		return err
	}
}

func routeLabel(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
		return r.Path
	}
	return "unmatched"
}
