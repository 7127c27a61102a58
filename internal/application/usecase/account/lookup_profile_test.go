package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type mapCache struct {
	entries map[string]*instagram.ProfileData
	sets    int
}

func (c *mapCache) Get(ctx context.Context, username string) (*instagram.ProfileData, error) {
	return c.entries[username], nil
}

func (c *mapCache) Set(ctx context.Context, username string, data *instagram.ProfileData) error {
	c.entries[username] = data
	c.sets++
	return nil
}

func newLookupFixture(strat *stubStrategy, cache ProfileCache) *LookupProfileUseCase {
	log := logger.NewNop()
	resolver := service.NewResolver([]service.FetchStrategy{strat}, time.Second, log)
	return NewLookupProfileUseCase(resolver, cache, log)
}

func TestLookupProfilePublicAccount(t *testing.T) {
	uc := newLookupFixture(&stubStrategy{data: aliceProfile(false, "p1", "p2")}, nil)

	out, err := uc.Execute(context.Background(), "@alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Profile.Username)
	assert.Len(t, out.Posts, 2)
	assert.Empty(t, out.Notice)
}

func TestLookupProfilePrivateAccountIsNotAnError(t *testing.T) {
	uc := newLookupFixture(&stubStrategy{data: aliceProfile(true, "p1")}, nil)

	out, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, out.Profile.IsPrivate)
	assert.NotNil(t, out.Posts)
	assert.Empty(t, out.Posts)
	assert.Equal(t, "This account is private; posts are not accessible.", out.Notice)
}

func TestLookupProfileRejectsInvalidIdentifier(t *testing.T) {
	uc := newLookupFixture(&stubStrategy{data: aliceProfile(false)}, nil)

	_, err := uc.Execute(context.Background(), "not a handle!")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestLookupProfileUsesCache(t *testing.T) {
	cache := &mapCache{entries: map[string]*instagram.ProfileData{}}
	strat := &stubStrategy{data: aliceProfile(false, "p1")}
	uc := newLookupFixture(strat, cache)

	_, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// Second lookup is served from cache without refetching.
	strat.err = assert.AnError
	out, err := uc.Execute(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Profile.Username)
	assert.Equal(t, 1, cache.sets)
}
