package repository

import (
	"github.com/deppfellow/fitlog/internal/server"
)

// Repositories is a container for all repository instances, so wiring
// passes one object around instead of many.
type Repositories struct {
	Users *UserRepository
}

// NewRepositories constructs the repository container from the
// application container (the store handle lives on s.DB, the logger on
// s.Logger).
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users: NewUserRepository(s),
	}
}
