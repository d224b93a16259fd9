package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mudler/xlog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/phonolab/phonolab/core/application"
	httpMiddleware "github.com/phonolab/phonolab/core/http/middleware"
	"github.com/phonolab/phonolab/core/http/routes"
	"github.com/phonolab/phonolab/core/schema"
	"github.com/phonolab/phonolab/core/services"
)

func API(application *application.Application) (*echo.Echo, error) {
	e := echo.New()
	appConfig := application.ApplicationConfig()

	// Hide banner
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = errorHandler

	// Set body limit; the alignment route enforces its own, tighter cap
	if appConfig.UploadLimitMB > 0 {
		e.Use(middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
			Limit: fmt.Sprintf("%dM", appConfig.UploadLimitMB),
			Skipper: func(c echo.Context) bool {
				return c.Path() == routes.ForcedAlignmentPath
			},
		}))
	}

	e.Use(httpMiddleware.RequestLogger())

	// Recover middleware
	if !appConfig.Debug {
		e.Use(middleware.Recover())
	}

	// Metrics middleware
	if !appConfig.DisableMetrics {
		metricsService, err := services.NewMetricsService()
		if err != nil {
			return nil, err
		}
		e.Use(httpMiddleware.MetricsMiddleware(metricsService))
		e.GET("/metrics", echo.WrapHandler(metricsService.Handler()))
		e.Server.RegisterOnShutdown(func() {
			if err := metricsService.Shutdown(); err != nil {
				xlog.Warn("Metrics shutdown failed", "error", err)
			}
		})
	}

	// Health Checks
	routes.HealthRoutes(e)

	routes.RegisterSpeechRoutes(e, application)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	routes.RegisterUIRoutes(e, appConfig.StaticDir)

	e.Server.RegisterOnShutdown(func() {
		xlog.Info("phonolab API server shutting down")
	})

	return e, nil
}

// errorHandler writes every failure as {"error": "..."} with the status of
// its error kind.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code, kind := httpMiddleware.ErrorStatus(err)

	message := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) && he == err {
		message = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		xlog.Error("Request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "kind", kind, "error", err)
	} else {
		xlog.Debug("Request rejected", "path", c.Request().URL.Path, "status", code, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, schema.ErrorResponse{Error: message})
	}
	if err != nil {
		xlog.Error("Failed to write error response", "error", err)
	}
}
