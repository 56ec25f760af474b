package store

import (
	"context"
	"time"

	"github.com/marmos91/retrogg/internal/logger"
	"github.com/marmos91/retrogg/internal/telemetry"
)

// Retention sweeper defaults.
const (
	DefaultSweepInterval  = time.Hour
	DefaultSweepRetention = 7 * 24 * time.Hour
)

// SweepStore is the slice of the persistence layer the sweeper needs.
// GORMStore satisfies it.
type SweepStore interface {
	CleanupDelivered(ctx context.Context, olderThan time.Duration) (int64, error)
	CleanupTokens(ctx context.Context) (int64, error)
}

// SweeperConfig controls the retention sweeper.
type SweeperConfig struct {
	// Interval is how often a sweep pass runs.
	// Default: 1h
	Interval time.Duration

	// Retention is how long delivered messages are kept before purging.
	// Default: 168h (7 days)
	Retention time.Duration
}

// applyDefaults replaces zero values with defaults.
func (c *SweeperConfig) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = DefaultSweepInterval
	}
	if c.Retention <= 0 {
		c.Retention = DefaultSweepRetention
	}
}

// Sweeper periodically purges delivered messages past their retention
// age and spent registration tokens.
//
// Nothing the sweeper removes is still reachable by clients: delivered
// messages are never re-sent, and used or expired tokens fail
// validation regardless of whether the row still exists.
type Sweeper struct {
	store  SweepStore
	config SweeperConfig
}

// NewSweeper creates a retention sweeper. Call Run to start it.
func NewSweeper(st SweepStore, config SweeperConfig) *Sweeper {
	config.applyDefaults()
	return &Sweeper{
		store:  st,
		config: config,
	}
}

// Run executes sweep passes on the configured interval until the
// context is cancelled. The first pass runs after one full interval so
// startup is not burdened with a bulk delete.
func (s *Sweeper) Run(ctx context.Context) {
	logger.Info("Retention sweeper started",
		"interval", s.config.Interval.String(),
		"retention", s.config.Retention.String())

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Retention sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one retention pass and returns how many rows it removed.
// Failures are logged rather than returned: rows that survive a failed
// delete are picked up again on the next pass.
func (s *Sweeper) Sweep(ctx context.Context) int64 {
	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanStoreSweep)
	defer span.End()
	ctx = telemetry.InjectTraceContext(ctx)

	messages, err := s.store.CleanupDelivered(ctx, s.config.Retention)
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.Error("Failed to purge delivered messages", logger.Err(err))
	}

	tokens, err := s.store.CleanupTokens(ctx)
	if err != nil {
		telemetry.RecordError(ctx, err)
		logger.Error("Failed to purge registration tokens", logger.Err(err))
	}

	removed := messages + tokens
	telemetry.SetAttributes(ctx, telemetry.Rows(int(removed)))

	if removed > 0 {
		logger.Info("Retention sweep removed rows",
			"messages", messages,
			"tokens", tokens)
	} else {
		logger.Debug("Retention sweep found nothing to remove")
	}

	return removed
}
