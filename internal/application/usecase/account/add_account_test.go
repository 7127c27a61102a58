package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type stubStrategy struct {
	data *instagram.ProfileData
	err  error
}

func (s *stubStrategy) Name() string { return "stub" }

func (s *stubStrategy) Fetch(ctx context.Context, username string) (*instagram.ProfileData, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.data
	cp.Posts = append([]instagram.Post(nil), s.data.Posts...)
	return &cp, nil
}

func aliceProfile(private bool, postIDs ...string) *instagram.ProfileData {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	posts := make([]instagram.Post, 0, len(postIDs))
	for i, id := range postIDs {
		published := base.Add(time.Duration(i) * time.Hour)
		posts = append(posts, instagram.Post{ID: id, PublishedAt: &published})
	}
	return &instagram.ProfileData{
		Profile: instagram.Profile{
			Username:  "alice",
			FullName:  "Alice Example",
			Followers: 1200,
			IsPrivate: private,
		},
		Posts: posts,
	}
}

func newAddFixture(strat *stubStrategy) (*AddAccountUseCase, *source.Registry, *library.Store) {
	log := logger.NewNop()
	registry := source.NewRegistry()
	store := library.NewStore(10, log)
	resolver := service.NewResolver([]service.FetchStrategy{strat}, time.Second, log)
	uc := NewAddAccountUseCase(registry, store, resolver, nil, log)
	return uc, registry, store
}

func TestAddAccountSeedsLibrary(t *testing.T) {
	uc, registry, store := newAddFixture(&stubStrategy{data: aliceProfile(false, "p1", "p2")})

	out, err := uc.Execute(context.Background(), "@alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Source.Username)
	assert.Equal(t, "Alice Example", out.Source.FullName)
	assert.Equal(t, 2, out.NewPosts)
	assert.False(t, out.Source.AddedAt.IsZero())

	assert.True(t, registry.Has("alice"))
	assert.Equal(t, 2, store.Len())
}

func TestAddAccountRejectsInvalidIdentifier(t *testing.T) {
	strat := &stubStrategy{err: errors.New("must not be called")}
	uc, registry, _ := newAddFixture(strat)

	_, err := uc.Execute(context.Background(), "not a handle!")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Equal(t, 0, registry.Len())
}

func TestAddAccountRejectsDuplicateBeforeFetching(t *testing.T) {
	uc, registry, _ := newAddFixture(&stubStrategy{data: aliceProfile(false, "p1")})
	require.NoError(t, registry.Add(source.Source{Username: "alice"}))

	_, err := uc.Execute(context.Background(), "https://instagram.com/alice")
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAddAccountRejectsPrivateProfiles(t *testing.T) {
	uc, registry, store := newAddFixture(&stubStrategy{data: aliceProfile(true, "p1")})

	_, err := uc.Execute(context.Background(), "alice")
	assert.ErrorIs(t, err, apperror.ErrPermission)
	assert.False(t, registry.Has("alice"))
	assert.Equal(t, 0, store.Len())
}

func TestAddAccountPropagatesResolutionFailure(t *testing.T) {
	uc, registry, _ := newAddFixture(&stubStrategy{err: errors.New("HTTP 429")})

	_, err := uc.Execute(context.Background(), "alice")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
	assert.False(t, registry.Has("alice"))
}

func TestRemoveAccount(t *testing.T) {
	log := logger.NewNop()
	registry := source.NewRegistry()
	store := library.NewStore(10, log)
	require.NoError(t, registry.Add(source.Source{Username: "alice"}))
	published := time.Now()
	store.Ingest([]instagram.Post{{ID: "p1", PublishedAt: &published}}, "alice")

	uc := NewRemoveAccountUseCase(registry, store, nil, log)

	// Untrack but keep already imported media.
	require.NoError(t, uc.Execute(context.Background(), "alice", false))
	assert.False(t, registry.Has("alice"))
	assert.Equal(t, 1, store.Len())

	err := uc.Execute(context.Background(), "alice", false)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestRemoveAccountWithMedia(t *testing.T) {
	log := logger.NewNop()
	registry := source.NewRegistry()
	store := library.NewStore(10, log)
	require.NoError(t, registry.Add(source.Source{Username: "alice"}))
	published := time.Now()
	store.Ingest([]instagram.Post{{ID: "p1", PublishedAt: &published}}, "alice")
	store.Ingest([]instagram.Post{{ID: "b1", PublishedAt: &published}}, "bob")

	uc := NewRemoveAccountUseCase(registry, store, nil, log)
	require.NoError(t, uc.Execute(context.Background(), "alice", true))

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "bob", store.Snapshot()[0].SourceAccount)
}
