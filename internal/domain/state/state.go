package state

import (
	"context"
	"time"

	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
)

// MinIntervalHours is the smallest accepted scrape period. Reconfiguration
// below it is rejected and the prior value kept.
const MinIntervalHours = 0.5

type SchedulerConfig struct {
	Enabled       bool       `json:"enabled"`
	IntervalHours float64    `json:"intervalHours"`
	LastRun       *time.Time `json:"lastRun"`
}

// Snapshot is the whole in-memory model, written out after every
// mutation and read back at process start.
type Snapshot struct {
	Items     []library.MediaItem `json:"items"`
	Accounts  []source.Source     `json:"accounts"`
	Scheduler SchedulerConfig     `json:"scheduler"`
}

type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}
