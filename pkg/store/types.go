package store

import (
	"context"
	"fmt"
	"time"

	"github.com/xingyaoww/langfuse/pkg/sessionquery"
)

// Trace is one recorded trace belonging to a session.
type Trace struct {
	// ID is the trace's unique identifier.
	ID string `json:"id"`

	// ProjectID is the owning project.
	ProjectID string `json:"projectId"`

	// SessionID groups traces into a session.
	SessionID string `json:"sessionId"`

	// Name is the caller-supplied trace name.
	Name string `json:"name"`

	// UserID is the end user the trace was recorded for, if any.
	UserID string `json:"userId,omitempty"`

	// Timestamp is when the trace started.
	Timestamp time.Time `json:"timestamp"`

	// Metadata is free-form, stored as JSON.
	Metadata map[string]any `json:"metadata,omitempty"`

	// Observations and Scores are populated only when the corresponding
	// field group was requested.
	Observations []Observation `json:"observations,omitempty"`
	Scores       []Score       `json:"scores,omitempty"`
}

// Observation is a span, generation, or event recorded within a trace.
type Observation struct {
	ID        string     `json:"id"`
	TraceID   string     `json:"traceId"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Model     string     `json:"model,omitempty"`
	Level     string     `json:"level,omitempty"`
}

// Score is an evaluation result attached to a trace.
type Score struct {
	ID        string    `json:"id"`
	TraceID   string    `json:"traceId"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Storage is the backing store for traces. The session query path only
// accepts an optimized query, so unbounded scans cannot reach a backend.
type Storage interface {
	// PutTrace persists a trace together with its observations and scores.
	PutTrace(ctx context.Context, trace *Trace) error

	// QuerySessionTraces returns the traces of a session within the
	// optimized query's bounds, newest first. The observations and scores
	// field groups are loaded only when requested.
	QuerySessionTraces(ctx context.Context, q sessionquery.OptimizedSessionQuery) ([]*Trace, error)

	// DeleteTracesBefore removes traces whose timestamp is older than
	// cutoff and returns the number deleted. Used by retention pruning.
	DeleteTracesBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// StorageError wraps a backend failure with its backend and operation.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, op string, err error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// wantsFieldGroup reports whether the optimized query requests the given
// field group, either explicitly or through the "all" sentinel.
func wantsFieldGroup(q sessionquery.OptimizedSessionQuery, group string) bool {
	for _, f := range q.Fields {
		if f == group || f == sessionquery.FieldGroupAll {
			return true
		}
	}
	return false
}
