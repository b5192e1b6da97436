package sessionquery

import (
	"fmt"
	"time"
)

// Penalty factors recorded by Estimate.
const (
	FactorNoTimeBounds    = "no_time_bounds"
	FactorLargeTimeRange  = "large_time_range"
	FactorMediumTimeRange = "medium_time_range"
	FactorAllFields       = "all_fields"
	FactorComplexFields   = "complex_fields"
	FactorLargeLimit      = "large_limit"
)

const (
	penaltyNoTimeBounds    = 50
	penaltyLargeTimeRange  = 20
	penaltyMediumTimeRange = 10
	penaltyAllFields       = 20
	penaltyComplexFields   = 10
	penaltyLargeLimit      = 15
)

// Estimate predicts how expensive a session query is likely to be. The score
// starts at 100 and loses a fixed penalty per violated rule; with all three
// rules maximally penalized it bottoms out at 15, so no floor clamp is
// applied. It never fails.
func Estimate(opts SessionQueryOptions) PerformanceEstimate {
	return estimateAt(opts, time.Now())
}

func estimateAt(opts SessionQueryOptions, now time.Time) PerformanceEstimate {
	score := 100
	var factors []string

	deduct := func(name string, penalty int) {
		score -= penalty
		factors = append(factors, fmt.Sprintf("%s (-%d)", name, penalty))
	}

	// Time bound.
	switch {
	case opts.FromTimestamp == nil:
		deduct(FactorNoTimeBounds, penaltyNoTimeBounds)
	case ageInDays(now, *opts.FromTimestamp) > ValidatorMaxRangeDays:
		deduct(FactorLargeTimeRange, penaltyLargeTimeRange)
	case ageInDays(now, *opts.FromTimestamp) > EstimatorMediumRangeDays:
		deduct(FactorMediumTimeRange, penaltyMediumTimeRange)
	}

	// Field selection. The "all" check runs first, so a selection is
	// flagged as broad or as complex, never both.
	switch {
	case len(opts.Fields) == 0 || containsField(opts.Fields, FieldGroupAll):
		deduct(FactorAllFields, penaltyAllFields)
	case containsField(opts.Fields, FieldGroupObservations) || containsField(opts.Fields, FieldGroupScores):
		deduct(FactorComplexFields, penaltyComplexFields)
	}

	// Limit.
	if limitUnsafe(opts.Limit) {
		deduct(FactorLargeLimit, penaltyLargeLimit)
	}

	return PerformanceEstimate{
		Score:             score,
		Factors:           factors,
		EstimatedDuration: classifyDuration(score),
	}
}

// classifyDuration maps a final score onto the duration scale.
func classifyDuration(score int) EstimatedDuration {
	switch {
	case score >= 80:
		return DurationFast
	case score >= 60:
		return DurationMedium
	case score >= 40:
		return DurationSlow
	default:
		return DurationVerySlow
	}
}
