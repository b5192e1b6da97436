// Package middleware provides the HTTP middleware chain for the trace query
// server: request ID assignment, panic recovery, and token-bucket rate
// limiting.
package middleware
