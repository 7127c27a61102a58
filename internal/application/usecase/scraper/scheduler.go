package scraper

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/adapters/event"
	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// Scheduler owns the scrape policy and the background timer that
// re-runs ingestion across every tracked account. Runs are mutually
// exclusive: a manual run arriving while a scheduled one is in flight
// blocks until it finishes. Disabling prevents future ticks from
// starting a run but does not abort one already running.
type Scheduler struct {
	registry    *source.Registry
	store       *library.Store
	resolver    *service.Resolver
	persister   *service.StatePersister
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger

	cfgMu sync.RWMutex
	cfg   state.SchedulerConfig

	runMu sync.Mutex

	loopMu sync.Mutex
	stop   chan struct{}

	now func() time.Time
}

func NewScheduler(
	registry *source.Registry,
	store *library.Store,
	resolver *service.Resolver,
	kafkaClient *event.KafkaProducerClient,
	defaultIntervalHours float64,
	log logger.Logger,
) *Scheduler {
	if defaultIntervalHours < state.MinIntervalHours {
		defaultIntervalHours = 1
	}
	return &Scheduler{
		registry:    registry,
		store:       store,
		resolver:    resolver,
		kafkaClient: kafkaClient,
		logger:      log,
		cfg:         state.SchedulerConfig{Enabled: false, IntervalHours: defaultIntervalHours},
		now:         time.Now,
	}
}

// SetPersister is wired after construction because the persister itself
// reads the scheduler config when building snapshots.
func (s *Scheduler) SetPersister(p *service.StatePersister) {
	s.persister = p
}

func (s *Scheduler) Config() state.SchedulerConfig {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

// Restore installs a previously persisted config without triggering a
// run. Call Start afterwards to arm the timer if enabled.
func (s *Scheduler) Restore(cfg state.SchedulerConfig) {
	s.cfgMu.Lock()
	defer s.cfgMu.Unlock()
	if cfg.IntervalHours < state.MinIntervalHours {
		cfg.IntervalHours = s.cfg.IntervalHours
	}
	s.cfg = cfg
}

// Configure applies a partial update. An interval below the minimum is
// rejected and the prior config kept untouched. Transitioning into
// enabled, or changing the interval while enabled, rearms the timer and
// triggers an immediate run.
func (s *Scheduler) Configure(enabled *bool, intervalHours *float64) (state.SchedulerConfig, error) {
	if intervalHours != nil && *intervalHours < state.MinIntervalHours {
		return s.Config(), apperror.NewInvalidInput("intervalHours must be at least 0.5", nil)
	}

	s.cfgMu.Lock()
	prev := s.cfg
	if enabled != nil {
		s.cfg.Enabled = *enabled
	}
	if intervalHours != nil {
		s.cfg.IntervalHours = *intervalHours
	}
	next := s.cfg
	s.cfgMu.Unlock()

	switch {
	case next.Enabled && (!prev.Enabled || next.IntervalHours != prev.IntervalHours):
		s.arm(next.IntervalHours)
		go func() {
			if _, err := s.RunNow(context.Background()); err != nil {
				s.logger.Error("scheduled run after reconfigure failed", err)
			}
		}()
	case !next.Enabled && prev.Enabled:
		s.disarm()
	}

	if s.persister != nil {
		s.persister.Persist(context.Background())
	}
	return next, nil
}

// Start arms the timer when the restored config says enabled. Unlike
// Configure it does not kick off an immediate run.
func (s *Scheduler) Start() {
	cfg := s.Config()
	if cfg.Enabled {
		s.arm(cfg.IntervalHours)
		s.logger.Info("scraper scheduler armed",
			zap.Float64("interval_hours", cfg.IntervalHours))
	}
}

func (s *Scheduler) Shutdown() {
	s.disarm()
}

// arm atomically replaces any running timer loop with a fresh one.
func (s *Scheduler) arm(intervalHours float64) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	s.stopLocked()
	stop := make(chan struct{})
	s.stop = stop

	interval := time.Duration(intervalHours * float64(time.Hour))
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if _, err := s.RunNow(context.Background()); err != nil {
					s.logger.Error("scheduled scrape run failed", err)
				}
			}
		}
	}()
}

func (s *Scheduler) disarm() {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}
