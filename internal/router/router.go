// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitlog/internal/handler"
	"github.com/deppfellow/fitlog/internal/middleware"
	"github.com/deppfellow/fitlog/internal/server"
)

// New builds the Echo instance: global error handler, middleware chain
// in dependency order (tracing starts the transaction before the
// context enhancer reads it), then the route groups.
func New(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = m.Global.GlobalErrorHandler

	e.Use(
		m.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		m.ContextEnhancer.EnhanceContext(),
		m.Tracing.EnhanceTracing(),
		m.Global.RequestLogger(),
		m.Global.CORS(),
		m.Global.Recover(),
		m.Global.Secure(),
	)

	registerSystemRoutes(e, h)
	registerExerciseRoutes(e, h)

	return e
}
