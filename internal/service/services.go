package service

import (
	"github.com/deppfellow/fitlog/internal/repository"
	"github.com/deppfellow/fitlog/internal/server"
)

// Services is a container for all business-layer services.
type Services struct {
	Tracker *TrackerService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Tracker: NewTrackerService(s, repos),
	}, nil
}
