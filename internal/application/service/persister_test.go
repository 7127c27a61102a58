package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type memoryRepo struct {
	saved   *state.Snapshot
	saveErr error
	saves   int
}

func (m *memoryRepo) Load(ctx context.Context) (*state.Snapshot, error) {
	return m.saved, nil
}

func (m *memoryRepo) Save(ctx context.Context, snap *state.Snapshot) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = snap
	return nil
}

func TestStatePersisterSnapshotsEverything(t *testing.T) {
	log := logger.NewNop()
	store := library.NewStore(10, log)
	registry := source.NewRegistry()
	require.NoError(t, registry.Add(source.Source{Username: "alice"}))

	published := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	store.Ingest([]instagram.Post{{ID: "p1", PublishedAt: &published}}, "alice")

	cfg := state.SchedulerConfig{Enabled: true, IntervalHours: 2}
	repo := &memoryRepo{}
	p := NewStatePersister(store, registry, func() state.SchedulerConfig { return cfg }, repo, log)

	p.Persist(context.Background())

	require.NotNil(t, repo.saved)
	assert.Len(t, repo.saved.Items, 1)
	assert.Len(t, repo.saved.Accounts, 1)
	assert.Equal(t, cfg, repo.saved.Scheduler)
}

func TestStatePersisterToleratesFailures(t *testing.T) {
	log := logger.NewNop()
	store := library.NewStore(10, log)
	registry := source.NewRegistry()
	repo := &memoryRepo{saveErr: errors.New("connection refused")}

	p := NewStatePersister(store, registry, nil, repo, log)

	// A failed save must not panic or propagate; the in-memory state
	// stays authoritative.
	p.Persist(context.Background())
	assert.Equal(t, 1, repo.saves)

	// A nil repository turns persistence off entirely.
	p = NewStatePersister(store, registry, nil, nil, log)
	p.Persist(context.Background())
}
