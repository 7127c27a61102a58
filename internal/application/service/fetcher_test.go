package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type fakeStrategy struct {
	name  string
	data  *instagram.ProfileData
	err   error
	calls int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Fetch(ctx context.Context, username string) (*instagram.ProfileData, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func profileData(username string, private bool, postIDs ...string) *instagram.ProfileData {
	posts := make([]instagram.Post, 0, len(postIDs))
	for _, id := range postIDs {
		posts = append(posts, instagram.Post{ID: id})
	}
	return &instagram.ProfileData{
		Profile: instagram.Profile{Username: username, IsPrivate: private},
		Posts:   posts,
	}
}

func TestResolverFirstStrategyWins(t *testing.T) {
	primary := &fakeStrategy{name: "mobile_api", data: profileData("alice", false, "p1")}
	fallback := &fakeStrategy{name: "web_api", data: profileData("alice", false, "p2")}
	r := NewResolver([]FetchStrategy{primary, fallback}, time.Second, logger.NewNop())

	data, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, data.Posts, 1)
	assert.Equal(t, "p1", data.Posts[0].ID)
	assert.Equal(t, 0, fallback.calls, "fallback must not run after a success")
}

func TestResolverFallsBackInOrder(t *testing.T) {
	primary := &fakeStrategy{name: "mobile_api", err: errors.New("HTTP 429")}
	fallback := &fakeStrategy{name: "web_api", data: profileData("alice", false, "p1")}
	r := NewResolver([]FetchStrategy{primary, fallback}, time.Second, logger.NewNop())

	data, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", data.Profile.Username)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestResolverAggregatesAllFailures(t *testing.T) {
	primary := &fakeStrategy{name: "mobile_api", err: errors.New("HTTP 429")}
	fallback := &fakeStrategy{name: "web_api", err: errors.New("non-JSON response")}
	r := NewResolver([]FetchStrategy{primary, fallback}, time.Second, logger.NewNop())

	_, err := r.Resolve(context.Background(), "alice")
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "alice", resErr.Username)
	require.Len(t, resErr.Attempts, 2)
	assert.Equal(t, Attempt{Strategy: "mobile_api", Reason: "HTTP 429"}, resErr.Attempts[0])
	assert.Equal(t, Attempt{Strategy: "web_api", Reason: "non-JSON response"}, resErr.Attempts[1])

	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestResolverTreatsMissingUserAsFailedAttempt(t *testing.T) {
	empty := &fakeStrategy{name: "mobile_api", data: &instagram.ProfileData{}}
	fallback := &fakeStrategy{name: "web_api", data: profileData("alice", false)}
	r := NewResolver([]FetchStrategy{empty, fallback}, time.Second, logger.NewNop())

	data, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", data.Profile.Username)

	r = NewResolver([]FetchStrategy{empty}, time.Second, logger.NewNop())
	_, err = r.Resolve(context.Background(), "ghost")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	require.Len(t, resErr.Attempts, 1)
	assert.Equal(t, "user not found", resErr.Attempts[0].Reason)
}

type stallingStrategy struct {
	name string
}

func (s *stallingStrategy) Name() string { return s.name }

func (s *stallingStrategy) Fetch(ctx context.Context, username string) (*instagram.ProfileData, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestResolverEachStrategyGetsFreshTimeout(t *testing.T) {
	// A hung first strategy must not burn the deadline for the
	// fallbacks: every attempt runs under its own timeout.
	slow := &stallingStrategy{name: "mobile_api"}
	fallback := &fakeStrategy{name: "web_profile", data: profileData("alice", false, "p1")}
	r := NewResolver([]FetchStrategy{slow, fallback}, 50*time.Millisecond, logger.NewNop())

	data, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", data.Profile.Username)
	assert.Equal(t, 1, fallback.calls)
}

func TestResolverPrivateProfileIsSuccessWithEmptyTimeline(t *testing.T) {
	// A private profile still returns public metadata alongside posts
	// the API refuses to serve; the resolver keeps the metadata and
	// drops the timeline.
	strat := &fakeStrategy{name: "mobile_api", data: profileData("alice", true, "p1", "p2")}
	r := NewResolver([]FetchStrategy{strat}, time.Second, logger.NewNop())

	data, err := r.Resolve(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, data.Profile.IsPrivate)
	assert.Empty(t, data.Posts)
}
