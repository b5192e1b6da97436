package sessionquery

import "time"

// Rule constants shared by the optimizer, validator, and estimator. The three
// operations read the same thresholds but project them differently.
const (
	// DefaultLookback is the time bound applied when FromTimestamp is
	// absent: "now minus 7 days".
	DefaultLookback = 7 * 24 * time.Hour

	// MaxLimit is the ceiling on the number of traces a single query may
	// return.
	MaxLimit = 100

	// DefaultLimit is used when the caller supplied no usable limit.
	DefaultLimit = 50

	// ValidatorMaxRangeDays is the lookback width beyond which the
	// validator warns. The 7-day threshold used by the estimator's
	// medium_time_range penalty is deliberately not checked here.
	ValidatorMaxRangeDays = 30

	// EstimatorMediumRangeDays is the lookback width beyond which the
	// estimator starts deducting points.
	EstimatorMediumRangeDays = 7
)

// Field-group vocabulary. "all" is a literal sentinel matched in the requested
// list; it is never expanded into the set of known groups.
const (
	FieldGroupAll          = "all"
	FieldGroupCore         = "core"
	FieldGroupObservations = "observations"
	FieldGroupScores       = "scores"
)

// Applied-correction tags, appended by Optimize in rule evaluation order.
const (
	TagDefaultTimeBound = "added_default_time_bound_7d"
	TagReducedFields    = "reduced_fields_to_core"
	TagCappedLimit      = "capped_limit_100"
)

// ageInDays returns how far in the past ts lies, in fractional days.
func ageInDays(now, ts time.Time) float64 {
	return now.Sub(ts).Hours() / 24
}

// containsField reports whether the requested field groups include name.
func containsField(fields []string, name string) bool {
	for _, f := range fields {
		if f == name {
			return true
		}
	}
	return false
}

// limitUnsafe reports whether a limit is absent, non-positive, or above the
// ceiling. Non-positive values are treated identically to an over-ceiling
// limit: the query must not run with them as-is.
func limitUnsafe(limit *int) bool {
	return limit == nil || *limit <= 0 || *limit > MaxLimit
}
