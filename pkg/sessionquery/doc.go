// Package sessionquery advises on and rewrites session-scoped trace queries.
//
// The storage engine cannot filter efficiently by session identifier alone
// (the identifier is not part of its sort key), so an unconstrained query
// risks a full-range scan. This package is the decision core that keeps such
// queries inside the index's efficient operating envelope. It consists of
// three independent, stateless operations over the same input shape:
//
//   - Optimize rewrites raw options into a safe-to-execute form and reports
//     which corrections it applied.
//   - Validate reports whether raw options already meet best practice, with
//     human-readable warnings and recommendations.
//   - Estimate scores the expected cost and predicts a coarse duration class.
//
// All three apply the same three performance rules (time bound, field
// selection breadth, result-size limit) and differ only in how they project
// the result. They do not call each other. None of them can fail: malformed
// values fall through to safe defaults.
//
// # Basic Usage
//
//	opts := sessionquery.SessionQueryOptions{
//	    SessionID: "session-123",
//	    ProjectID: "project-abc",
//	    Limit:     &limit,
//	}
//
//	optimized := sessionquery.Optimize(opts, slog.Default())
//	traces, err := store.QuerySessionTraces(ctx, optimized)
//
// This package only advises and rewrites parameters. Executing the query,
// choosing timeouts, and surfacing storage errors are the caller's concern.
package sessionquery
