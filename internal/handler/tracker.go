package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/fitlog/internal/models"
	"github.com/deppfellow/fitlog/internal/server"
	"github.com/deppfellow/fitlog/internal/service"
	"github.com/deppfellow/fitlog/internal/validation"
)

// TrackerHandler serves the exercise-tracking endpoints.
type TrackerHandler struct {
	Handler
	service *service.TrackerService
}

// NewTrackerHandler constructs a TrackerHandler.
func NewTrackerHandler(s *server.Server, services *service.Services) *TrackerHandler {
	return &TrackerHandler{
		Handler: NewHandler(s),
		service: services.Tracker,
	}
}

// --- Create user ------------------------------------------------------------

// CreateUserRequest is the payload for POST /api/exercise/new-user.
// Clients submit it form-encoded; JSON is accepted too.
type CreateUserRequest struct {
	Username string `form:"username" json:"username"`
}

func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return validation.CustomValidationErrors{
			{Field: "username", Message: "is required"},
		}
	}
	return nil
}

// CreateUserResponse echoes the new user's name and store-assigned id.
type CreateUserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// CreateUser creates a user with an empty exercise log. A username that
// is already taken yields 409 Conflict.
func (h *TrackerHandler) CreateUser(c echo.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	user, err := h.service.CreateUser(c.Request().Context(), req.Username)
	if err != nil {
		return nil, err
	}

	return &CreateUserResponse{
		Username: user.Username,
		ID:       user.ID,
	}, nil
}

// --- Add exercise -----------------------------------------------------------

// AddExerciseRequest is the payload for POST /api/exercise/add.
// Duration arrives as a numeric string and is validated before parsing.
type AddExerciseRequest struct {
	UserID      string `form:"userId" json:"userId"`
	Description string `form:"description" json:"description"`
	Duration    string `form:"duration" json:"duration"`
	Date        string `form:"date" json:"date"`
}

// Validate checks field presence in a fixed order: description, then
// duration, then userId, short-circuiting on the first failure; the
// numeric duration check runs only after all three are present. Clients
// depend on this exact precedence, so it is expressed here rather than
// via tags.
func (r *AddExerciseRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return validation.CustomValidationErrors{
			{Field: "description", Message: "is required"},
		}
	}
	if strings.TrimSpace(r.Duration) == "" {
		return validation.CustomValidationErrors{
			{Field: "duration", Message: "is required"},
		}
	}
	if strings.TrimSpace(r.UserID) == "" {
		return validation.CustomValidationErrors{
			{Field: "userId", Message: "is required"},
		}
	}
	if _, err := strconv.Atoi(r.Duration); err != nil {
		return validation.CustomValidationErrors{
			{Field: "duration", Message: "must be a number"},
		}
	}
	return nil
}

// durationMinutes returns the parsed duration. Only valid after
// Validate has succeeded.
func (r *AddExerciseRequest) durationMinutes() int {
	d, _ := strconv.Atoi(r.Duration)
	return d
}

// AddExerciseResponse reports the appended entry together with the
// owning user.
type AddExerciseResponse struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	ID          string `json:"_id"`
	Date        string `json:"date"`
}

// AddExercise appends an exercise to a user's log.
func (h *TrackerHandler) AddExercise(c echo.Context, req *AddExerciseRequest) (*AddExerciseResponse, error) {
	user, exercise, err := h.service.AddExercise(c.Request().Context(), service.AddExerciseInput{
		UserID:      req.UserID,
		Description: req.Description,
		Duration:    req.durationMinutes(),
		Date:        req.Date,
	})
	if err != nil {
		return nil, err
	}

	return &AddExerciseResponse{
		Username:    user.Username,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		ID:          user.ID,
		Date:        exercise.Date,
	}, nil
}

// --- List users -------------------------------------------------------------

// ListUsersRequest is empty; the endpoint takes no input.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error { return nil }

// UserSummary is one element of the list-users response.
type UserSummary struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// ListUsers returns every user in store iteration order. No pagination;
// the result is unbounded.
func (h *TrackerHandler) ListUsers(c echo.Context, _ *ListUsersRequest) ([]UserSummary, error) {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			Username: u.Username,
			ID:       u.ID,
		})
	}
	return summaries, nil
}

// --- Get exercise log -------------------------------------------------------

// GetLogRequest is the query payload for GET /api/exercise/log.
type GetLogRequest struct {
	UserID string `query:"userId"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  string `query:"limit"`
}

// Validate distinguishes a missing or malformed userId (bad request)
// from a well-formed one that matches no user (not found, decided
// later by the lookup).
func (r *GetLogRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return validation.CustomValidationErrors{
			{Field: "userId", Message: "is required"},
		}
	}
	if !validation.IsValidUUID(r.UserID) {
		return validation.CustomValidationErrors{
			{Field: "userId", Message: "must be a valid user id"},
		}
	}
	if r.Limit != "" {
		n, err := strconv.Atoi(r.Limit)
		if err != nil || n < 0 {
			return validation.CustomValidationErrors{
				{Field: "limit", Message: "must be a non-negative number"},
			}
		}
	}
	return nil
}

// limitValue returns the parsed limit, zero when absent. Only valid
// after Validate has succeeded.
func (r *GetLogRequest) limitValue() int {
	if r.Limit == "" {
		return 0
	}
	n, _ := strconv.Atoi(r.Limit)
	return n
}

// GetLogResponse is the filtered exercise log for one user. Count is
// always the total log size, not the filtered size; clients depend on
// that. From and To appear only when they were supplied, normalized.
type GetLogResponse struct {
	ID       string            `json:"_id"`
	Username string            `json:"username"`
	From     string            `json:"from,omitempty"`
	To       string            `json:"to,omitempty"`
	Count    int               `json:"count"`
	Log      []models.Exercise `json:"log"`
}

// GetLog returns a user's exercise log filtered by optional from/to
// dates and truncated to an optional limit.
func (h *TrackerHandler) GetLog(c echo.Context, req *GetLogRequest) (*GetLogResponse, error) {
	result, err := h.service.GetLog(c.Request().Context(), service.LogQuery{
		UserID: req.UserID,
		From:   req.From,
		To:     req.To,
		Limit:  req.limitValue(),
	})
	if err != nil {
		return nil, err
	}

	return &GetLogResponse{
		ID:       result.User.ID,
		Username: result.User.Username,
		From:     result.From,
		To:       result.To,
		Count:    result.Count,
		Log:      result.Entries,
	}, nil
}
