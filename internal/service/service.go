// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from the handler, applies the tracker's rules (date
// resolution, log filtering, upsert policy), and calls repository
// methods to interact with the store.
package service
