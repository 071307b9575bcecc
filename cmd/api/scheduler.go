package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Republisher recomputes every held read-model against the current date.
type Republisher interface {
	Republish(ctx context.Context) int
}

// Purger drops expired cache entries.
type Purger interface {
	PurgeExpired() int
}

const (
	// rolloverSpec runs just after local midnight so visit statuses move
	// from future to current to past without waiting for a mutation.
	rolloverSpec = "0 0 * * *"
	purgeSpec    = "@hourly"
)

// newScheduler registers the background jobs of the serve command. The
// returned cron is not started.
func newScheduler(j Republisher, cache Purger, log *slog.Logger) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(rolloverSpec, func() {
		n := j.Republish(context.Background())
		log.Info("midnight rollover", "users", n)
	}); err != nil {
		return nil, fmt.Errorf("schedule rollover: %w", err)
	}

	if _, err := c.AddFunc(purgeSpec, func() {
		if n := cache.PurgeExpired(); n > 0 {
			log.Debug("geocoding cache purged", "entries", n)
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule cache purge: %w", err)
	}
	return c, nil
}
