package sessionquery

import "time"

// SessionQueryOptions describes a raw, caller-supplied request for the traces
// belonging to a session. The zero value of every optional field means "not
// supplied"; the engine never mutates an options value it is given.
type SessionQueryOptions struct {
	// SessionID is the opaque session identifier. Required, non-empty.
	// The engine passes it through unchecked; identifier validation is the
	// caller's responsibility.
	SessionID string

	// ProjectID is the opaque project identifier. Required, non-empty.
	// Used only as observability context, never for decision logic.
	ProjectID string

	// FromTimestamp is the optional lower time bound. Nil means an
	// unbounded lookback over the whole session history.
	FromTimestamp *time.Time

	// ToTimestamp is the optional upper time bound. Reserved: no current
	// rule evaluates it, and it passes through unchanged.
	ToTimestamp *time.Time

	// Limit is the optional maximum number of traces to return.
	// Nil, non-positive, or above the ceiling is considered unsafe.
	Limit *int

	// Fields is the optional ordered list of requested field groups
	// (e.g. "core", "observations", "scores"). Nil, empty, or including
	// the sentinel group "all" is considered broad.
	Fields []string
}

// OptimizedSessionQuery is the result of Optimize: the input options with
// FromTimestamp, Limit, and Fields guaranteed present and within safe bounds,
// plus the ordered list of corrections that were applied.
type OptimizedSessionQuery struct {
	SessionID     string
	ProjectID     string
	FromTimestamp time.Time
	ToTimestamp   *time.Time
	Limit         int
	Fields        []string

	// Optimizations holds one tag per applied correction, in rule
	// evaluation order (time bound, fields, limit). Empty for input that
	// was already safe.
	Optimizations []string
}

// ValidationResult reports whether a query already meets best practice.
type ValidationResult struct {
	// IsOptimal is true iff Warnings is empty.
	IsOptimal bool

	// Warnings contains one entry per violated rule, in rule order.
	Warnings []string

	// Recommendations is parallel to Warnings: Recommendations[i] is the
	// remediation for Warnings[i].
	Recommendations []string
}

// EstimatedDuration is the coarse duration class predicted for a query.
type EstimatedDuration string

const (
	DurationFast     EstimatedDuration = "fast"
	DurationMedium   EstimatedDuration = "medium"
	DurationSlow     EstimatedDuration = "slow"
	DurationVerySlow EstimatedDuration = "very_slow"
)

// PerformanceEstimate is the result of Estimate.
type PerformanceEstimate struct {
	// Score starts at 100 and has a fixed penalty subtracted per violated
	// rule. The rule set bottoms out at 15; no floor clamp is applied.
	Score int

	// Factors records every deduction as "<factor_name> (-<penalty>)",
	// in rule evaluation order.
	Factors []string

	// EstimatedDuration is derived from the final score.
	EstimatedDuration EstimatedDuration
}

// EventLogger is the narrow observability sink consumed by Optimize. It is
// satisfied by *slog.Logger and by telemetry/logging.Logger. Events are
// best-effort: implementations must not block or fail the calling query.
type EventLogger interface {
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}
