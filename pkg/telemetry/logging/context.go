package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// SessionIDKey is the context key for session identifiers.
	SessionIDKey contextKey = "session_id"

	// ProjectIDKey is the context key for project identifiers.
	ProjectIDKey contextKey = "project_id"
)

// WithRequestID returns a context carrying the given request ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithSessionID returns a context carrying the given session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// WithProjectID returns a context carrying the given project identifier.
func WithProjectID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ProjectIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "" if none is set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// extractContextFields collects the known request-scoped fields from ctx as
// alternating key/value pairs suitable for slog.
func extractContextFields(ctx context.Context) []any {
	var args []any
	for _, key := range []contextKey{RequestIDKey, SessionIDKey, ProjectIDKey} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			args = append(args, string(key), v)
		}
	}
	return args
}
