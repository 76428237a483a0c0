// Package repository handles all interactions with the document store.
//
// It maps the service's User and Exercise entities onto store documents
// and indexes, abstracting key layout and serialization away from the
// service layer.
package repository

import "errors"

var (
	// ErrNotFound is returned when no user matches the given identifier.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when creating a user whose username
	// already has an index entry. The check and the insert happen in
	// one store transaction, so two concurrent creates cannot both
	// succeed.
	ErrUsernameTaken = errors.New("username already taken")
)
