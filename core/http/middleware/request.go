package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mudler/xlog"
)

// RequestLogger logs every request once it has been handled.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = ErrorStatus(err)
			}
			xlog.Info("HTTP request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"latency", time.Since(start),
			)
			return err
		}
	}
}
