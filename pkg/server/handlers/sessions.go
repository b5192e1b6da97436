package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/xingyaoww/langfuse/pkg/config"
	"github.com/xingyaoww/langfuse/pkg/sessionquery"
	"github.com/xingyaoww/langfuse/pkg/store"
	"github.com/xingyaoww/langfuse/pkg/telemetry/logging"
	"github.com/xingyaoww/langfuse/pkg/telemetry/metrics"
)

// SessionTracesHandler serves session-scoped trace queries. It is the caller
// the advisory engine was written for: it feeds raw request options through
// Optimize, executes the optimized query against the store under the
// configured timeout, and maps store failures onto HTTP errors.
type SessionTracesHandler struct {
	storage store.Storage
	logger  *logging.Logger
	metrics *metrics.QueryMetrics

	// queryCfg is hot-reloadable via UpdateQueryConfig.
	mu       sync.RWMutex
	queryCfg config.QueryConfig
}

// NewSessionTracesHandler creates a new session traces handler.
func NewSessionTracesHandler(storage store.Storage, logger *logging.Logger, qm *metrics.QueryMetrics, queryCfg config.QueryConfig) *SessionTracesHandler {
	return &SessionTracesHandler{
		storage:  storage,
		logger:   logger,
		metrics:  qm,
		queryCfg: queryCfg,
	}
}

// UpdateQueryConfig swaps in a new query configuration. Safe to call while
// requests are in flight; each request reads the configuration once.
func (h *SessionTracesHandler) UpdateQueryConfig(cfg config.QueryConfig) {
	h.mu.Lock()
	h.queryCfg = cfg
	h.mu.Unlock()
}

func (h *SessionTracesHandler) currentQueryConfig() config.QueryConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.queryCfg
}

// Traces handles GET /api/public/sessions/{sessionId}/traces.
func (h *SessionTracesHandler) Traces(w http.ResponseWriter, r *http.Request) {
	opts, err := parseQueryOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg := h.currentQueryConfig()
	ctx := logging.WithSessionID(r.Context(), opts.SessionID)
	ctx = logging.WithProjectID(ctx, opts.ProjectID)

	// The engine assumes warnings are always wanted; suppression is this
	// route's job, done by handing Optimize no sink at all.
	var events sessionquery.EventLogger
	if !cfg.SuppressWarnings {
		events = h.logger.WithContext(ctx)
	}

	optimized := sessionquery.Optimize(opts, events)
	h.metrics.RecordOptimizations(optimized.Optimizations)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	start := time.Now()
	traces, err := h.storage.QuerySessionTraces(queryCtx, optimized)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			h.metrics.RecordQuery("timeout", elapsed)
			h.logger.WithContext(ctx).Error("session query timed out",
				"timeout", cfg.Timeout.String(),
			)
			writeError(w, http.StatusGatewayTimeout,
				"session query timed out; narrow the time range or reduce the requested fields")
			return
		}

		h.metrics.RecordQuery("error", elapsed)
		h.logger.WithContext(ctx).Error("session query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query session traces")
		return
	}

	h.metrics.RecordQuery("success", elapsed)

	if traces == nil {
		traces = []*store.Trace{}
	}
	writeJSON(w, http.StatusOK, TracesResponse{
		Data: traces,
		Meta: TracesMeta{
			Count:         len(traces),
			FromTimestamp: optimized.FromTimestamp,
			ToTimestamp:   optimized.ToTimestamp,
			Limit:         optimized.Limit,
			Fields:        optimized.Fields,
			Optimizations: emptyIfNil(optimized.Optimizations),
		},
	})
}

// Advice handles GET /api/public/sessions/{sessionId}/traces/advice. It
// reports the validator's verdict and the estimator's score for the raw
// options without touching the store.
func (h *SessionTracesHandler) Advice(w http.ResponseWriter, r *http.Request) {
	opts, err := parseQueryOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	validation := sessionquery.Validate(opts)
	estimate := sessionquery.Estimate(opts)
	h.metrics.RecordEstimate(estimate)

	writeJSON(w, http.StatusOK, AdviceResponse{
		Validation: newValidationPayload(validation),
		Estimate:   newEstimatePayload(estimate),
	})
}

// parseQueryOptions maps HTTP request parameters onto the engine's input
// shape. Malformed typed values (timestamps, limit) are request errors; the
// engine itself never rejects anything it can represent.
func parseQueryOptions(r *http.Request) (sessionquery.SessionQueryOptions, error) {
	opts := sessionquery.SessionQueryOptions{
		SessionID: r.PathValue("sessionId"),
		ProjectID: r.URL.Query().Get("projectId"),
	}

	if opts.SessionID == "" {
		return opts, fmt.Errorf("sessionId is required")
	}
	if opts.ProjectID == "" {
		return opts, fmt.Errorf("projectId is required")
	}

	q := r.URL.Query()

	if v := q.Get("fromTimestamp"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, fmt.Errorf("invalid fromTimestamp %q: must be RFC 3339", v)
		}
		opts.FromTimestamp = &ts
	}
	if v := q.Get("toTimestamp"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return opts, fmt.Errorf("invalid toTimestamp %q: must be RFC 3339", v)
		}
		opts.ToTimestamp = &ts
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("invalid limit %q: must be an integer", v)
		}
		opts.Limit = &limit
	}
	if v := q.Get("fields"); v != "" {
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				opts.Fields = append(opts.Fields, f)
			}
		}
	}

	return opts, nil
}
