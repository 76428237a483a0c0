package service

import (
	"context"
	"time"

	"github.com/deppfellow/fitlog/internal/errs"
	"github.com/deppfellow/fitlog/internal/lib/dates"
	"github.com/deppfellow/fitlog/internal/middleware"
	"github.com/deppfellow/fitlog/internal/models"
	"github.com/deppfellow/fitlog/internal/repository"
	"github.com/deppfellow/fitlog/internal/server"
)

// TrackerService implements the four exercise-tracking operations:
// create user, add exercise, list users, and get exercise log.
type TrackerService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewTrackerService constructs a TrackerService.
func NewTrackerService(s *server.Server, repos *repository.Repositories) *TrackerService {
	return &TrackerService{
		server: s,
		repos:  repos,
	}
}

// storeContext bounds a store operation so a stuck store call fails the
// request instead of hanging it indefinitely.
func (ts *TrackerService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(ts.server.Config.Tracker.StoreTimeout) * time.Second
	return context.WithTimeout(ctx, timeout)
}

// CreateUser creates a user with an empty exercise log.
//
// Username uniqueness is enforced inside the store transaction, so two
// racing creates for the same name cannot both succeed; the loser's
// error surfaces as a conflict.
func (ts *TrackerService) CreateUser(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := ts.storeContext(ctx)
	defer cancel()

	return ts.repos.Users.CreateUser(ctx, username)
}

// AddExerciseInput is the validated input for AddExercise. Duration is
// in whole minutes; Date is the raw client string, empty when absent.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    int
	Date        string
}

// AddExercise appends an exercise to a user's log.
//
// An absent date is stamped with the current calendar date; a supplied
// one is parsed and normalized to the canonical form, and unparsable
// dates are rejected rather than stored invalid. Whether an unknown
// user id fails or creates a recordless user is governed by the
// upsert_missing_users config switch.
func (ts *TrackerService) AddExercise(ctx context.Context, input AddExerciseInput) (*models.User, models.Exercise, error) {
	date := dates.Today()
	if input.Date != "" {
		parsed, err := dates.Parse(input.Date)
		if err != nil {
			return nil, models.Exercise{}, errs.NewBadRequestError("date must be a valid date", false, nil, nil)
		}
		date = dates.Format(parsed)
	}

	exercise := models.Exercise{
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
	}

	ctx, cancel := ts.storeContext(ctx)
	defer cancel()

	user, err := ts.repos.Users.AppendExercise(ctx, input.UserID, exercise, ts.server.Config.Tracker.UpsertMissingUsers)
	if err != nil {
		return nil, models.Exercise{}, err
	}

	middleware.LoggerFromContext(ctx).Debug().
		Str("user_id", user.ID).
		Str("date", exercise.Date).
		Int("duration", exercise.Duration).
		Msg("exercise logged")

	return user, exercise, nil
}

// ListUsers returns every user in store iteration order.
func (ts *TrackerService) ListUsers(ctx context.Context) ([]*models.User, error) {
	ctx, cancel := ts.storeContext(ctx)
	defer cancel()

	return ts.repos.Users.ListUsers(ctx)
}

// LogQuery is the validated input for GetLog. From and To are raw
// client date strings, empty when absent. Limit zero means no limit,
// matching the historical behavior where limit=0 was ignored.
type LogQuery struct {
	UserID string
	From   string
	To     string
	Limit  int
}

// LogResult is the outcome of GetLog. Count is always the user's total
// exercise count, independent of filtering; this mirrors the behavior
// clients already depend on. From and To carry the normalized bounds,
// empty when they were not supplied.
type LogResult struct {
	User    *models.User
	From    string
	To      string
	Count   int
	Entries []models.Exercise
}

// GetLog fetches a user's exercise log, filtered by optional from/to
// calendar dates and truncated to an optional limit.
//
// Filtering compares parsed dates at day granularity, independent of
// the storage string format. Entries whose stored date cannot be parsed
// never match a date filter.
func (ts *TrackerService) GetLog(ctx context.Context, query LogQuery) (*LogResult, error) {
	ctx, cancel := ts.storeContext(ctx)
	defer cancel()

	user, err := ts.repos.Users.FindUserByID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	result := &LogResult{
		User:    user,
		Count:   len(user.Exercises),
		Entries: user.Exercises,
	}

	if query.From != "" {
		from, err := dates.Parse(query.From)
		if err != nil {
			return nil, errs.NewBadRequestError("from must be a valid date", false, nil, nil)
		}
		result.From = dates.Format(from)
		result.Entries = filterByDate(result.Entries, func(d time.Time) bool {
			return !d.Before(from)
		})
	}

	if query.To != "" {
		to, err := dates.Parse(query.To)
		if err != nil {
			return nil, errs.NewBadRequestError("to must be a valid date", false, nil, nil)
		}
		result.To = dates.Format(to)
		result.Entries = filterByDate(result.Entries, func(d time.Time) bool {
			return !d.After(to)
		})
	}

	if query.Limit > 0 && len(result.Entries) > query.Limit {
		result.Entries = result.Entries[:query.Limit]
	}

	return result, nil
}

// filterByDate keeps entries whose parsed date satisfies keep,
// preserving original order.
func filterByDate(entries []models.Exercise, keep func(time.Time) bool) []models.Exercise {
	filtered := make([]models.Exercise, 0, len(entries))
	for _, e := range entries {
		d, err := dates.Parse(e.Date)
		if err != nil {
			continue
		}
		if keep(d) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
