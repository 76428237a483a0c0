package handler

import (
	"github.com/deppfellow/fitlog/internal/server"
	"github.com/deppfellow/fitlog/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router
// setup passes one object around instead of many.
type Handlers struct {
	Tracker *TrackerHandler // Tracker serves the exercise-tracking API.
	Health  *HealthHandler  // Health serves the service health endpoint.
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Tracker: NewTrackerHandler(s, services),
		Health:  NewHealthHandler(s),
	}
}
