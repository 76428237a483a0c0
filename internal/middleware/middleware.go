// Package middleware contains the HTTP middleware stack: CORS, request
// logging, panic recovery, secure headers, request-id correlation,
// request-scoped logger enrichment, New Relic tracing, and the global
// error handler that funnels every failure into one response shape.
package middleware
