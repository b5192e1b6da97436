// Package server provides the HTTP server for session trace queries.
//
// This package ties together the session query handlers, the middleware
// chain, and the metrics endpoint, and manages the server lifecycle
// including start, graceful shutdown, and OS signal handling.
//
// # Routes
//
// The server exposes the following HTTP endpoints:
//
//   - GET /api/public/sessions/{sessionId}/traces - query traces for a session
//   - GET /api/public/sessions/{sessionId}/traces/advice - validation verdict
//     and performance estimate for the query, without executing it
//   - GET /health - liveness probe (always returns 200)
//   - GET /ready - readiness probe (pings the trace store)
//   - GET /metrics - Prometheus metrics (when enabled)
//
// # Middleware Chain
//
// Requests pass through the following middleware (outermost first):
//  1. Recovery: recovers from panics and returns a 500 error
//  2. RequestID: attaches a unique request ID for tracing
//  3. RateLimit: token bucket rate limiting (when enabled)
//
// # Graceful Shutdown
//
// The server shuts down gracefully on SIGTERM or SIGINT, or when its
// context is cancelled. Active requests get up to the configured shutdown
// timeout to complete.
package server
