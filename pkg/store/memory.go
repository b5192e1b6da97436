package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xingyaoww/langfuse/pkg/sessionquery"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// This implementation is intended for testing only.
type MemoryStorage struct {
	traces map[string]*Trace
	mu     sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		traces: make(map[string]*Trace),
	}
}

// PutTrace stores a copy of the trace.
func (s *MemoryStorage) PutTrace(ctx context.Context, trace *Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	traceCopy := *trace
	s.traces[trace.ID] = &traceCopy
	return nil
}

// QuerySessionTraces filters stored traces by the optimized query's bounds.
func (s *MemoryStorage) QuerySessionTraces(ctx context.Context, q sessionquery.OptimizedSessionQuery) ([]*Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Trace
	for _, trace := range s.traces {
		if trace.ProjectID != q.ProjectID || trace.SessionID != q.SessionID {
			continue
		}
		if trace.Timestamp.Before(q.FromTimestamp) {
			continue
		}
		if q.ToTimestamp != nil && trace.Timestamp.After(*q.ToTimestamp) {
			continue
		}

		traceCopy := *trace
		if !wantsFieldGroup(q, sessionquery.FieldGroupObservations) {
			traceCopy.Observations = nil
		}
		if !wantsFieldGroup(q, sessionquery.FieldGroupScores) {
			traceCopy.Scores = nil
		}
		results = append(results, &traceCopy)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})

	if len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// DeleteTracesBefore removes traces older than cutoff.
func (s *MemoryStorage) DeleteTracesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, trace := range s.traces {
		if trace.Timestamp.Before(cutoff) {
			delete(s.traces, id)
			deleted++
		}
	}
	return deleted, nil
}

// Ping always succeeds for the in-memory backend.
func (s *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op for the in-memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}

// Len returns the number of stored traces.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.traces)
}
