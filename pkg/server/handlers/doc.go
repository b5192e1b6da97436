// Package handlers provides the HTTP handlers of the trace query service.
//
// The session traces handler is the advisory engine's caller: it passes raw
// query parameters through the optimizer, executes the optimized query
// against the store under the configured timeout, and maps a deadline
// exceeded onto HTTP 504. The advice handler exposes the validator and
// estimator directly for client feedback.
package handlers
