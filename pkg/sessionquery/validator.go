package sessionquery

import "time"

// Warning and recommendation text emitted by Validate. Warnings[i] always
// pairs with Recommendations[i].
const (
	WarnNoTimeBounds   = "No time bounds specified"
	RecAddTimeBound    = "Add a fromTimestamp to improve query performance by 50-70%"
	WarnWideTimeRange  = "Time range exceeds 30 days"
	RecNarrowTimeRange = "Consider narrowing the time range for faster queries"
	WarnAllFields      = "Requesting all fields"
	RecMinimalFields   = `Specify only the field groups you need, e.g. ["core"]`
	WarnLargeLimit     = "Large or unlimited result set"
	RecPaginate        = "Use pagination with a limit of 100 or less"
)

// Validate reports whether raw session query options already meet best
// practice. It never fails and never mutates its input; it evaluates the same
// three dimensions as Optimize but only describes the violations.
func Validate(opts SessionQueryOptions) ValidationResult {
	return validateAt(opts, time.Now())
}

func validateAt(opts SessionQueryOptions, now time.Time) ValidationResult {
	var warnings, recommendations []string

	// Time bound. A range between 7 and 30 days old passes here even
	// though the estimator deducts for it; that asymmetry is part of the
	// current rule set.
	switch {
	case opts.FromTimestamp == nil:
		warnings = append(warnings, WarnNoTimeBounds)
		recommendations = append(recommendations, RecAddTimeBound)
	case ageInDays(now, *opts.FromTimestamp) > ValidatorMaxRangeDays:
		warnings = append(warnings, WarnWideTimeRange)
		recommendations = append(recommendations, RecNarrowTimeRange)
	}

	// Field selection.
	if opts.Fields == nil || containsField(opts.Fields, FieldGroupAll) {
		warnings = append(warnings, WarnAllFields)
		recommendations = append(recommendations, RecMinimalFields)
	}

	// Limit.
	if limitUnsafe(opts.Limit) {
		warnings = append(warnings, WarnLargeLimit)
		recommendations = append(recommendations, RecPaginate)
	}

	return ValidationResult{
		IsOptimal:       len(warnings) == 0,
		Warnings:        warnings,
		Recommendations: recommendations,
	}
}
