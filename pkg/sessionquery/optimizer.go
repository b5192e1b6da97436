package sessionquery

import "time"

// Optimize rewrites raw session query options into a fully-bound, safe-to-
// execute form. It never fails: every input shape produces an output. Unsafe
// or absent values are corrected and tagged; values already within bounds pass
// through unchanged and produce no tag.
//
// Corrections are applied as an ordered pipeline (time bound, fields, limit)
// so that each rule stays an independent, additive step. Optimize emits
// best-effort observability events through logger; a nil logger disables them.
func Optimize(opts SessionQueryOptions, logger EventLogger) OptimizedSessionQuery {
	return optimizeAt(opts, time.Now(), logger)
}

func optimizeAt(opts SessionQueryOptions, now time.Time, logger EventLogger) OptimizedSessionQuery {
	var tags []string

	// Rule 1: time bound. An unbounded lookback forces the storage engine
	// to scan the entire session history, so default to the last 7 days.
	from := opts.FromTimestamp
	if from == nil {
		bounded := now.Add(-DefaultLookback)
		from = &bounded
		tags = append(tags, TagDefaultTimeBound)

		if logger != nil {
			logger.Warn("session query without time bounds, applying default",
				"session_id", opts.SessionID,
				"project_id", opts.ProjectID,
				"optimization", TagDefaultTimeBound,
			)
		}
	}

	// Rule 2: field selection. An absent or empty selection is narrowed to
	// the core group. An explicit "all" is respected, not silently
	// corrected, but flagged as a high-impact choice.
	fields := opts.Fields
	switch {
	case len(fields) == 0:
		fields = []string{FieldGroupCore}
		tags = append(tags, TagReducedFields)
	case containsField(fields, FieldGroupAll):
		if logger != nil {
			logger.Warn("session query requests all fields",
				"session_id", opts.SessionID,
				"project_id", opts.ProjectID,
				"performance_impact", "high",
			)
		}
	}

	// Rule 3: limit. Absent and non-positive limits fall back to the
	// default; anything above the ceiling is capped.
	limit := DefaultLimit
	if opts.Limit != nil && *opts.Limit > 0 {
		limit = *opts.Limit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if limitUnsafe(opts.Limit) {
		tags = append(tags, TagCappedLimit)

		if opts.Limit != nil && *opts.Limit > MaxLimit && logger != nil {
			logger.Info("capping session query limit",
				"session_id", opts.SessionID,
				"project_id", opts.ProjectID,
				"original_limit", *opts.Limit,
				"capped_limit", limit,
			)
		}
	}

	return OptimizedSessionQuery{
		SessionID:     opts.SessionID,
		ProjectID:     opts.ProjectID,
		FromTimestamp: *from,
		ToTimestamp:   opts.ToTimestamp,
		Limit:         limit,
		Fields:        fields,
		Optimizations: tags,
	}
}
