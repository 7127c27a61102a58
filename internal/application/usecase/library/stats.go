package library

import (
	"context"
	"time"

	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type StatsUseCase struct {
	store        *library.Store
	schedulerCfg func() state.SchedulerConfig
	logger       logger.Logger
}

func NewStatsUseCase(store *library.Store, schedulerCfg func() state.SchedulerConfig, log logger.Logger) *StatsUseCase {
	return &StatsUseCase{store: store, schedulerCfg: schedulerCfg, logger: log}
}

type StatsOutput struct {
	library.Stats
	LastImport *time.Time `json:"lastImport"`
}

func (uc *StatsUseCase) Execute(ctx context.Context) (*StatsOutput, error) {
	out := &StatsOutput{Stats: uc.store.Stats()}
	if uc.schedulerCfg != nil {
		out.LastImport = uc.schedulerCfg().LastRun
	}
	return out, nil
}
