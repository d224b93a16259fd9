package routes

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mudler/xlog"
)

// RegisterUIRoutes serves the prebuilt single page app in staticDir. Requests
// no route or file answers fall back to index.html so client side routing works.
func RegisterUIRoutes(e *echo.Echo, staticDir string) {
	if staticDir == "" {
		return
	}
	if st, err := os.Stat(staticDir); err != nil || !st.IsDir() {
		xlog.Warn("Static directory not found, UI disabled", "dir", staticDir)
		return
	}

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  staticDir,
		Index: "index.html",
		HTML5: true,
	}))
}
