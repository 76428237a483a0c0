package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitlog/internal/handler"
)

// registerExerciseRoutes registers the exercise-tracking API.
func registerExerciseRoutes(r *echo.Echo, h *handler.Handlers) {
	api := r.Group("/api/exercise")

	api.POST("/new-user", handler.Handle(h.Tracker.Handler, h.Tracker.CreateUser, http.StatusOK,
		func() *handler.CreateUserRequest { return new(handler.CreateUserRequest) }))

	api.POST("/add", handler.Handle(h.Tracker.Handler, h.Tracker.AddExercise, http.StatusOK,
		func() *handler.AddExerciseRequest { return new(handler.AddExerciseRequest) }))

	api.GET("/users", handler.Handle(h.Tracker.Handler, h.Tracker.ListUsers, http.StatusOK,
		func() *handler.ListUsersRequest { return new(handler.ListUsersRequest) }))

	api.GET("/log", handler.Handle(h.Tracker.Handler, h.Tracker.GetLog, http.StatusOK,
		func() *handler.GetLogRequest { return new(handler.GetLogRequest) }))
}
