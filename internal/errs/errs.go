// Package errs defines the custom error types returned to API clients.
//
// Every user-visible failure is an *HTTPError carrying a machine code,
// a human message, and the HTTP status to respond with, so clients
// receive a consistent, actionable error shape from a single place.
package errs
