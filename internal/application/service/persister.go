package service

import (
	"context"

	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// StatePersister snapshots the whole in-memory model into the state
// repository after mutating operations. A failed save is logged and the
// in-memory mutation stands; the process simply runs memory-only until
// the next successful save.
type StatePersister struct {
	store     *library.Store
	registry  *source.Registry
	scheduler func() state.SchedulerConfig
	repo      state.Repository
	logger    logger.Logger
}

func NewStatePersister(
	store *library.Store,
	registry *source.Registry,
	scheduler func() state.SchedulerConfig,
	repo state.Repository,
	log logger.Logger,
) *StatePersister {
	return &StatePersister{
		store:     store,
		registry:  registry,
		scheduler: scheduler,
		repo:      repo,
		logger:    log,
	}
}

func (p *StatePersister) Persist(ctx context.Context) {
	if p.repo == nil {
		return
	}
	snap := &state.Snapshot{
		Items:    p.store.Snapshot(),
		Accounts: p.registry.List(),
	}
	if p.scheduler != nil {
		snap.Scheduler = p.scheduler()
	}
	if err := p.repo.Save(ctx, snap); err != nil {
		p.logger.Error("failed to persist state snapshot, continuing in-memory", err)
	}
}
