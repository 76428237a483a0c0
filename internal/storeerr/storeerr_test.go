package storeerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fitlog/internal/errs"
	"github.com/deppfellow/fitlog/internal/repository"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorNotFound(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(repository.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "User not found", httpErr.Message)

	// Wrapped sentinels classify the same way.
	wrapped := fmt.Errorf("lookup: %w", repository.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, asHTTPError(t, HandleError(wrapped)).Status)
}

func TestHandleErrorConflict(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(repository.ErrUsernameTaken))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "Username already taken", httpErr.Message)
}

func TestHandleErrorRawKeyMiss(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(badger.ErrKeyNotFound))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorConflictingCommitIsRetryable(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(badger.ErrConflict))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	assert.Equal(t, "Store busy, please retry", httpErr.Message)
}

func TestHandleErrorUnknownIsGeneric500(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("disk exploded")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	// Internal details never reach the client.
	assert.NotContains(t, httpErr.Message, "disk")
}
