package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/xingyaoww/langfuse/pkg/sessionquery"
)

// storageBackends returns one of each backend so every test runs against
// both implementations.
func storageBackends(t *testing.T) map[string]Storage {
	t.Helper()

	sqlite, err := NewSQLiteStorage(&SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "traces.db"),
		MaxOpenConns: 2,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create sqlite storage: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Storage{
		"sqlite": sqlite,
		"memory": NewMemoryStorage(),
	}
}

func newTrace(sessionID, projectID string, ts time.Time) *Trace {
	traceID := uuid.New().String()
	end := ts.Add(2 * time.Second)
	return &Trace{
		ID:        traceID,
		ProjectID: projectID,
		SessionID: sessionID,
		Name:      "chat-completion",
		UserID:    "user-1",
		Timestamp: ts,
		Metadata:  map[string]any{"release": "v4"},
		Observations: []Observation{
			{
				ID:        uuid.New().String(),
				TraceID:   traceID,
				Type:      "generation",
				Name:      "llm-call",
				StartTime: ts,
				EndTime:   &end,
				Model:     "gpt-4",
				Level:     "DEFAULT",
			},
		},
		Scores: []Score{
			{
				ID:        uuid.New().String(),
				TraceID:   traceID,
				Name:      "relevance",
				Value:     0.92,
				Timestamp: ts,
			},
		},
	}
}

func optimizedQuery(sessionID, projectID string, from time.Time, limit int, fields ...string) sessionquery.OptimizedSessionQuery {
	return sessionquery.OptimizedSessionQuery{
		SessionID:     sessionID,
		ProjectID:     projectID,
		FromTimestamp: from,
		Limit:         limit,
		Fields:        fields,
	}
}

func TestStorage_QuerySessionTraces(t *testing.T) {
	for name, storage := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC().Truncate(time.Second)

			recent := newTrace("session-123", "project-abc", now.Add(-time.Hour))
			older := newTrace("session-123", "project-abc", now.Add(-48*time.Hour))
			ancient := newTrace("session-123", "project-abc", now.AddDate(0, 0, -30))
			otherSession := newTrace("session-999", "project-abc", now.Add(-time.Hour))
			otherProject := newTrace("session-123", "project-xyz", now.Add(-time.Hour))

			for _, tr := range []*Trace{recent, older, ancient, otherSession, otherProject} {
				if err := storage.PutTrace(ctx, tr); err != nil {
					t.Fatalf("PutTrace() error = %v", err)
				}
			}

			q := optimizedQuery("session-123", "project-abc",
				now.Add(-7*24*time.Hour), 50, "core")

			traces, err := storage.QuerySessionTraces(ctx, q)
			if err != nil {
				t.Fatalf("QuerySessionTraces() error = %v", err)
			}

			if len(traces) != 2 {
				t.Fatalf("got %d traces, want 2 (time-bounded, session-scoped)", len(traces))
			}
			// Newest first.
			if traces[0].ID != recent.ID || traces[1].ID != older.ID {
				t.Errorf("traces not ordered newest first: %s, %s", traces[0].ID, traces[1].ID)
			}
			// Core group only: no child records loaded.
			if len(traces[0].Observations) != 0 || len(traces[0].Scores) != 0 {
				t.Error("core field group should not load observations or scores")
			}
			if traces[0].Metadata["release"] != "v4" {
				t.Errorf("metadata not round-tripped: %v", traces[0].Metadata)
			}
		})
	}
}

func TestStorage_FieldGroups(t *testing.T) {
	for name, storage := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC().Truncate(time.Second)

			tr := newTrace("session-123", "project-abc", now.Add(-time.Hour))
			if err := storage.PutTrace(ctx, tr); err != nil {
				t.Fatalf("PutTrace() error = %v", err)
			}

			from := now.Add(-24 * time.Hour)

			cases := []struct {
				fields    []string
				wantObs   bool
				wantScore bool
			}{
				{[]string{"core"}, false, false},
				{[]string{"core", "observations"}, true, false},
				{[]string{"core", "scores"}, false, true},
				{[]string{"all"}, true, true},
			}

			for _, tc := range cases {
				q := optimizedQuery("session-123", "project-abc", from, 10, tc.fields...)
				traces, err := storage.QuerySessionTraces(ctx, q)
				if err != nil {
					t.Fatalf("QuerySessionTraces(%v) error = %v", tc.fields, err)
				}
				if len(traces) != 1 {
					t.Fatalf("QuerySessionTraces(%v) returned %d traces, want 1", tc.fields, len(traces))
				}

				gotObs := len(traces[0].Observations) > 0
				gotScore := len(traces[0].Scores) > 0
				if gotObs != tc.wantObs {
					t.Errorf("fields %v: observations loaded = %v, want %v", tc.fields, gotObs, tc.wantObs)
				}
				if gotScore != tc.wantScore {
					t.Errorf("fields %v: scores loaded = %v, want %v", tc.fields, gotScore, tc.wantScore)
				}
			}
		})
	}
}

func TestStorage_LimitAndUpperBound(t *testing.T) {
	for name, storage := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC().Truncate(time.Second)

			for i := 0; i < 10; i++ {
				tr := newTrace("session-123", "project-abc", now.Add(-time.Duration(i)*time.Minute))
				if err := storage.PutTrace(ctx, tr); err != nil {
					t.Fatalf("PutTrace() error = %v", err)
				}
			}

			q := optimizedQuery("session-123", "project-abc", now.Add(-time.Hour), 3, "core")
			traces, err := storage.QuerySessionTraces(ctx, q)
			if err != nil {
				t.Fatalf("QuerySessionTraces() error = %v", err)
			}
			if len(traces) != 3 {
				t.Errorf("limit not honored: got %d traces, want 3", len(traces))
			}

			upper := now.Add(-5 * time.Minute)
			q.ToTimestamp = &upper
			q.Limit = 50
			traces, err = storage.QuerySessionTraces(ctx, q)
			if err != nil {
				t.Fatalf("QuerySessionTraces() error = %v", err)
			}
			if len(traces) != 5 {
				t.Errorf("upper bound not honored: got %d traces, want 5", len(traces))
			}
		})
	}
}

func TestStorage_DeleteTracesBefore(t *testing.T) {
	for name, storage := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().UTC().Truncate(time.Second)

			fresh := newTrace("session-123", "project-abc", now.Add(-time.Hour))
			stale := newTrace("session-123", "project-abc", now.AddDate(0, 0, -100))
			for _, tr := range []*Trace{fresh, stale} {
				if err := storage.PutTrace(ctx, tr); err != nil {
					t.Fatalf("PutTrace() error = %v", err)
				}
			}

			deleted, err := storage.DeleteTracesBefore(ctx, now.AddDate(0, 0, -90))
			if err != nil {
				t.Fatalf("DeleteTracesBefore() error = %v", err)
			}
			if deleted != 1 {
				t.Errorf("deleted = %d, want 1", deleted)
			}

			q := optimizedQuery("session-123", "project-abc", now.AddDate(-1, 0, 0), 100, "core")
			traces, err := storage.QuerySessionTraces(ctx, q)
			if err != nil {
				t.Fatalf("QuerySessionTraces() error = %v", err)
			}
			if len(traces) != 1 || traces[0].ID != fresh.ID {
				t.Errorf("expected only the fresh trace to survive, got %d traces", len(traces))
			}
		})
	}
}

func TestStorage_Ping(t *testing.T) {
	for name, storage := range storageBackends(t) {
		t.Run(name, func(t *testing.T) {
			if err := storage.Ping(context.Background()); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}
