package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/larder-io/larder/internal/cache"
	"github.com/larder-io/larder/pkg/logger"
	"github.com/larder-io/larder/pkg/metrics"
)

const defaultSweepSpec = "@every 1m"

// Janitor periodically sweeps expired entries out of the in-process memory
// store. Redis owns its own TTL expiry, so a Janitor built without a memory
// store is a no-op.
type Janitor struct {
	store    *cache.MemoryStore
	cron     *cron.Cron
	log      *zap.Logger
	schedule string
}

// Option customises the Janitor.
type Option func(*Janitor)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(j *Janitor) {
		if c != nil {
			j.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for the expiry sweep.
func WithSchedule(spec string) Option {
	return func(j *Janitor) {
		if spec != "" {
			j.schedule = spec
		}
	}
}

// NewJanitor constructs a Janitor. A nil store disables all work.
func NewJanitor(store *cache.MemoryStore, opts ...Option) *Janitor {
	janitor := &Janitor{
		store:    store,
		schedule: defaultSweepSpec,
		log:      logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(janitor)
	}

	if janitor.cron == nil {
		janitor.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return janitor
}

// Start registers the sweep job and launches the scheduler.
func (j *Janitor) Start() error {
	if j.store == nil {
		return nil
	}

	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return err
	}

	j.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any running sweep to complete.
func (j *Janitor) Stop() context.Context {
	if j.cron == nil {
		return context.Background()
	}
	return j.cron.Stop()
}

// RunOnce executes a single sweep immediately. Used in tests and during
// graceful shutdown.
func (j *Janitor) RunOnce() int {
	if j.store == nil {
		return 0
	}

	removed := j.store.CleanupExpired()
	if removed > 0 {
		metrics.JanitorSweeps.Add(float64(removed))
		j.log.Info("swept expired cache entries", zap.Int("removed", removed))
	}
	return removed
}

func (j *Janitor) sweep() {
	j.RunOnce()
}
