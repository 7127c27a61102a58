package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/instagram"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// ProfileCache caches resolved lookups keyed by username. Get returns
// (nil, nil) on a miss; cache failures are the adapter's problem and
// never fail a lookup.
type ProfileCache interface {
	Get(ctx context.Context, username string) (*instagram.ProfileData, error)
	Set(ctx context.Context, username string, data *instagram.ProfileData) error
}

type LookupProfileUseCase struct {
	resolver *service.Resolver
	cache    ProfileCache
	logger   logger.Logger
}

func NewLookupProfileUseCase(
	resolver *service.Resolver,
	cache ProfileCache,
	log logger.Logger,
) *LookupProfileUseCase {
	return &LookupProfileUseCase{
		resolver: resolver,
		cache:    cache,
		logger:   log,
	}
}

type LookupProfileOutput struct {
	Profile instagram.Profile
	Posts   []instagram.Post
	Notice  string
}

// Execute is the one-off lookup: unlike adding a tracked account, a
// private profile is served with its metadata, an empty timeline and an
// explanatory notice.
func (uc *LookupProfileUseCase) Execute(ctx context.Context, identifier string) (*LookupProfileOutput, error) {
	username := source.ExtractUsername(identifier)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is not a valid handle or profile URL", nil)
	}

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, username)
		if err != nil {
			uc.logger.Warn("profile cache read failed", zap.String("username", username), zap.Error(err))
		} else if cached != nil {
			return uc.toOutput(cached), nil
		}
	}

	data, err := uc.resolver.Resolve(ctx, username)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, username, data); err != nil {
			uc.logger.Warn("profile cache write failed", zap.String("username", username), zap.Error(err))
		}
	}

	return uc.toOutput(data), nil
}

func (uc *LookupProfileUseCase) toOutput(data *instagram.ProfileData) *LookupProfileOutput {
	out := &LookupProfileOutput{Profile: data.Profile, Posts: data.Posts}
	if out.Posts == nil {
		out.Posts = []instagram.Post{}
	}
	if data.Profile.IsPrivate {
		out.Notice = "This account is private; posts are not accessible."
	}
	return out
}
