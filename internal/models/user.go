// Package models defines the documents persisted in the store.
//
// A user is a single document holding its exercise log inline,
// mirroring how the store keeps them: one JSON document per user.
package models

// Exercise is one entry in a user's exercise log.
//
// Exercises have no identity of their own; they live inside their
// parent User document and are only addressable by position. The log
// is append-only: entries are never removed or reordered.
type Exercise struct {
	Description string `json:"description"`
	// Duration is in whole minutes.
	Duration int `json:"duration"`
	// Date is stored as the canonical human-readable form
	// "Mon Jan 02 2006" (see lib/dates), not a structured date.
	Date string `json:"date"`
}

// User is the document stored under the "user:" key prefix.
type User struct {
	ID        string     `json:"_id"`
	Username  string     `json:"username"`
	Exercises []Exercise `json:"exercises"`
}
