package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitlog/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// business logic: the health endpoint, the index page, and static
// assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by Kubernetes/monitors).
	r.GET("/status", h.Health.CheckHealth)

	// Index page and its assets.
	r.File("/", "static/index.html")
	r.Static("/static", "static")
}
