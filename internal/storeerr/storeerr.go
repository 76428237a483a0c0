// Package storeerr converts document store and repository errors into
// application HTTP errors.
//
// It is the single place where store failures are classified, so
// handlers and services can return raw errors and let the global error
// handler produce the client-facing response. Anything it cannot
// classify becomes a generic 500: internal details are logged
// server-side, never exposed to the client.
package storeerr

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/deppfellow/fitlog/internal/errs"
	"github.com/deppfellow/fitlog/internal/repository"
)

// HandleError maps an error from the store/repository layer to an
// *errs.HTTPError.
func HandleError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return errs.NewNotFoundError("User not found", false, nil)

	case errors.Is(err, repository.ErrUsernameTaken):
		return errs.NewConflictError("Username already taken", false)

	case errors.Is(err, badger.ErrKeyNotFound):
		// A raw key miss should have been translated by the repository;
		// if one leaks this far, treat it as not-found all the same.
		return errs.NewNotFoundError("Not found", false, nil)

	case errors.Is(err, badger.ErrConflict):
		// The repository retries aborted write transactions; this is the
		// rare case where retries ran out under sustained contention. The
		// write was not applied and the client may retry it.
		return errs.NewServiceUnavailableError("Store busy, please retry")

	default:
		return errs.NewInternalServerError()
	}
}
