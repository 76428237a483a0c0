package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deppfellow/fitlog/internal/database"
	"github.com/deppfellow/fitlog/internal/models"
	"github.com/deppfellow/fitlog/internal/server"
)

// Key layout: one JSON document per user plus a username index entry
// pointing at the user id. Both live in the same keyspace and are
// written in the same transaction.
const (
	userPrefix     = "user:"
	usernamePrefix = "username:"
)

func userKey(id string) []byte {
	return []byte(userPrefix + id)
}

func usernameKey(username string) []byte {
	return []byte(usernamePrefix + username)
}

// maxTxnRetries bounds how often an aborted write transaction is
// retried. badger detects conflicting commits optimistically, so two
// concurrent appends to the same document abort one of them; re-running
// the closure re-reads the document and both writes land.
const maxTxnRetries = 20

// UserRepository performs all User document operations.
type UserRepository struct {
	db     *database.Database
	logger *zerolog.Logger
}

// NewUserRepository constructs a UserRepository from the application
// container.
func NewUserRepository(s *server.Server) *UserRepository {
	return &UserRepository{
		db:     s.DB,
		logger: s.Logger,
	}
}

// update runs fn in a write transaction, retrying when the commit is
// aborted by badger's conflict detection. Errors other than
// badger.ErrConflict are returned as-is on the first attempt.
func (r *UserRepository) update(fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt <= maxTxnRetries; attempt++ {
		err = r.db.DB.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}

	r.logger.Warn().Int("attempts", maxTxnRetries+1).Msg("write transaction retries exhausted")

	return err
}

// CreateUser persists a new user with an empty exercise log and returns
// it with its store-assigned id.
//
// The username index entry is written in the same transaction as the
// document, so a duplicate username fails with ErrUsernameTaken even
// when two identical requests race.
func (r *UserRepository) CreateUser(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Exercises: []models.Exercise{},
	}

	err := r.update(func(txn *badger.Txn) error {
		_, err := txn.Get(usernameKey(username))
		switch {
		case err == nil:
			return ErrUsernameTaken
		case !errors.Is(err, badger.ErrKeyNotFound):
			return fmt.Errorf("check username index: %w", err)
		}

		if err := setUser(txn, user); err != nil {
			return err
		}
		return txn.Set(usernameKey(username), []byte(user.ID))
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug().Str("user_id", user.ID).Str("username", username).Msg("user created")

	return user, nil
}

// FindUserByID retrieves a user document by id. Returns ErrNotFound when
// no document matches.
func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.db.DB.View(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindUserByUsername retrieves a user by exact username match via the
// username index. Returns ErrNotFound when no user has that name.
func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.db.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read username index: %w", err)
		}

		return item.Value(func(id []byte) error {
			user, err = getUser(txn, string(id))
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every user document in store iteration order
// (lexicographic by id; no sorting is applied).
func (r *UserRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	users := []*models.User{}
	err := r.db.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(userPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var user models.User
				if err := json.Unmarshal(val, &user); err != nil {
					return fmt.Errorf("decode user document: %w", err)
				}
				users = append(users, &user)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// AppendExercise appends one exercise to the identified user's log and
// returns the updated user.
//
// With upsert enabled, an unknown id creates a recordless user holding
// only the new exercise, matching the historical lenient behavior.
// Otherwise unknown ids fail with ErrNotFound.
func (r *UserRepository) AppendExercise(ctx context.Context, userID string, exercise models.Exercise, upsert bool) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var user *models.User
	err := r.update(func(txn *badger.Txn) error {
		var err error
		user, err = getUser(txn, userID)
		switch {
		case errors.Is(err, ErrNotFound):
			if !upsert {
				return err
			}
			user = &models.User{ID: userID, Exercises: []models.Exercise{}}
		case err != nil:
			return err
		}

		user.Exercises = append(user.Exercises, exercise)
		return setUser(txn, user)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug().Str("user_id", userID).Int("log_size", len(user.Exercises)).Msg("exercise appended")

	return user, nil
}

// getUser reads and decodes a user document inside a transaction.
func getUser(txn *badger.Txn, id string) (*models.User, error) {
	item, err := txn.Get(userKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read user document: %w", err)
	}

	var user models.User
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &user)
	})
	if err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	return &user, nil
}

// setUser encodes and writes a user document inside a transaction.
func setUser(txn *badger.Txn, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user document: %w", err)
	}
	return txn.Set(userKey(user.ID), data)
}
