package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/fitlog/internal/config"
	"github.com/deppfellow/fitlog/internal/errs"
	"github.com/deppfellow/fitlog/internal/handler"
	"github.com/deppfellow/fitlog/internal/middleware"
	"github.com/deppfellow/fitlog/internal/repository"
	"github.com/deppfellow/fitlog/internal/router"
	"github.com/deppfellow/fitlog/internal/server"
	"github.com/deppfellow/fitlog/internal/service"
)

func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		Primary:       config.Primary{Env: "test"},
		Server:        config.ServerConfig{Port: "0", ReadTimeout: 5, WriteTimeout: 5, IdleTimeout: 5},
		Database:      config.DatabaseConfig{InMemory: true, GCInterval: 300},
		Tracker:       config.TrackerConfig{StoreTimeout: 5},
		Observability: config.DefaultObservabilityConfig(),
	}

	log := zerolog.Nop()
	s, err := server.New(cfg, &log, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.DB.Close() })

	repos := repository.NewRepositories(s)
	services, err := service.NewServices(s, repos)
	require.NoError(t, err)

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	return router.New(s, handlers, middlewares)
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func createUser(t *testing.T, e *echo.Echo, username string) handler.CreateUserResponse {
	t.Helper()
	rec := postForm(e, "/api/exercise/new-user", url.Values{"username": {username}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[handler.CreateUserResponse](t, rec)
}

func addExercise(t *testing.T, e *echo.Echo, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return postForm(e, "/api/exercise/add", form)
}

func TestCreateUserEndpoint(t *testing.T) {
	e := newTestApp(t)

	created := createUser(t, e, "alice")
	assert.Equal(t, "alice", created.Username)
	assert.NotEmpty(t, created.ID)
}

func TestCreateUserMissingUsername(t *testing.T) {
	e := newTestApp(t)

	rec := postForm(e, "/api/exercise/new-user", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "username is required", body.Message)
}

func TestCreateUserDuplicateIsConflict(t *testing.T) {
	e := newTestApp(t)

	createUser(t, e, "alice")

	rec := postForm(e, "/api/exercise/new-user", url.Values{"username": {"alice"}})
	assert.Equal(t, http.StatusConflict, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Username already taken", body.Message)

	// No second document was created.
	users := decode[[]handler.UserSummary](t, get(e, "/api/exercise/users"))
	assert.Len(t, users, 1)
}

func TestAddExerciseValidationPrecedence(t *testing.T) {
	e := newTestApp(t)

	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"all fields missing", url.Values{}, "description is required"},
		{
			"description present, duration missing",
			url.Values{"description": {"run"}},
			"duration is required",
		},
		{
			"description and duration present, userId missing",
			url.Values{"description": {"run"}, "duration": {"30"}},
			"userId is required",
		},
		{
			"duration not numeric",
			url.Values{"description": {"run"}, "duration": {"lots"}, "userId": {"x"}},
			"duration must be a number",
		},
		{
			"missing userId reported before non-numeric duration",
			url.Values{"description": {"run"}, "duration": {"lots"}},
			"userId is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := addExercise(t, e, tt.form)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, tt.want, body.Message)
		})
	}
}

func TestAddExerciseEndpoint(t *testing.T) {
	e := newTestApp(t)
	created := createUser(t, e, "alice")

	rec := addExercise(t, e, url.Values{
		"userId":      {created.ID},
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"2023-01-01"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decode[handler.AddExerciseResponse](t, rec)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "run", body.Description)
	assert.Equal(t, 30, body.Duration)
	assert.Equal(t, created.ID, body.ID)
	assert.Equal(t, "Sun Jan 01 2023", body.Date)
}

func TestAddExerciseUnknownUser(t *testing.T) {
	e := newTestApp(t)

	rec := addExercise(t, e, url.Values{
		"userId":      {"3e0f326b-8b55-42a8-9f51-6d2f2e9b1f30"},
		"description": {"run"},
		"duration":    {"30"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddExerciseInvalidDate(t *testing.T) {
	e := newTestApp(t)
	created := createUser(t, e, "alice")

	rec := addExercise(t, e, url.Values{
		"userId":      {created.ID},
		"description": {"run"},
		"duration":    {"30"},
		"date":        {"garbage"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	e := newTestApp(t)

	alice := createUser(t, e, "alice")
	bob := createUser(t, e, "bob")

	users := decode[[]handler.UserSummary](t, get(e, "/api/exercise/users"))
	require.Len(t, users, 2)

	byName := map[string]string{}
	for _, u := range users {
		byName[u.Username] = u.ID
	}
	assert.Equal(t, alice.ID, byName["alice"])
	assert.Equal(t, bob.ID, byName["bob"])
}

func TestGetLogEndpoint(t *testing.T) {
	e := newTestApp(t)
	created := createUser(t, e, "alice")

	for _, date := range []string{"2023-01-01", "2023-02-01", "2023-03-01"} {
		rec := addExercise(t, e, url.Values{
			"userId":      {created.ID},
			"description": {"run"},
			"duration":    {"30"},
			"date":        {date},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	t.Run("unfiltered", func(t *testing.T) {
		rec := get(e, "/api/exercise/log?userId="+created.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[handler.GetLogResponse](t, rec)
		assert.Equal(t, created.ID, body.ID)
		assert.Equal(t, "alice", body.Username)
		assert.Equal(t, 3, body.Count)
		assert.Len(t, body.Log, 3)
		assert.Empty(t, body.From)
		assert.Empty(t, body.To)
	})

	t.Run("filtered with limit keeps count", func(t *testing.T) {
		rec := get(e, "/api/exercise/log?userId="+created.ID+"&from=2023-02-01&limit=1")
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode[handler.GetLogResponse](t, rec)
		require.Len(t, body.Log, 1)
		assert.Equal(t, "Wed Feb 01 2023", body.Log[0].Date)
		assert.Equal(t, "Wed Feb 01 2023", body.From)
		assert.Equal(t, 3, body.Count)
	})

	t.Run("missing userId", func(t *testing.T) {
		rec := get(e, "/api/exercise/log")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errs.HTTPError](t, rec)
		assert.Equal(t, "userId is required", body.Message)
	})

	t.Run("malformed userId is a bad request", func(t *testing.T) {
		rec := get(e, "/api/exercise/log?userId=not-a-uuid")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown userId is not found", func(t *testing.T) {
		rec := get(e, "/api/exercise/log?userId=3e0f326b-8b55-42a8-9f51-6d2f2e9b1f30")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		rec := get(e, "/api/exercise/log?userId="+created.ID+"&limit=ten")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUnmatchedRoute(t *testing.T) {
	e := newTestApp(t)

	rec := get(e, "/api/exercise/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "not found", body.Message)
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestApp(t)

	rec := get(e, "/status")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
