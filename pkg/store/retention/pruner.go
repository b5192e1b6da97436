package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xingyaoww/langfuse/pkg/store"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain traces.
	// 0 means keep traces forever (no pruning).
	RetentionDays int

	// PruneSchedule is a cron expression for scheduling pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces the retention policy on stored traces.
type Pruner struct {
	storage store.Storage
	config  *Config
	logger  *slog.Logger
}

// NewPruner creates a new retention pruner.
func NewPruner(storage store.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pruner{
		storage: storage,
		config:  config,
		logger:  slog.Default().With("component", "store.retention"),
	}
}

// Prune deletes traces older than the retention window and returns the
// number deleted. With RetentionDays of 0 it is a no-op.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	if p.config.RetentionDays <= 0 {
		return 0, nil
	}

	cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
	start := time.Now()

	deleted, err := p.storage.DeleteTracesBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("retention prune failed: %w", err)
	}

	p.logger.Info("retention prune completed",
		"deleted", deleted,
		"cutoff", cutoff.Format(time.RFC3339),
		"duration", time.Since(start).String(),
	)
	return deleted, nil
}
