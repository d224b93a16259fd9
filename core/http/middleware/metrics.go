package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/phonolab/phonolab/core/services"
)

// MetricsMiddleware records the duration of every API call and counts
// failures by error kind. Requests for the metrics endpoint itself are skipped.
func MetricsMiddleware(metrics *services.MetricsService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			// route pattern keeps SPA paths from exploding label cardinality
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			method := c.Request().Method

			start := time.Now()
			err := next(c)
			elapsed := float64(time.Since(start)) / float64(time.Second)
			metrics.ObserveAPICall(method, path, elapsed)

			if err != nil {
				_, kind := ErrorStatus(err)
				metrics.ObserveAPIError(path, kind)
			}
			return err
		}
	}
}
