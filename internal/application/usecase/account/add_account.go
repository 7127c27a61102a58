package account

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/pkg/apperror"
	"github.com/howlerhq/howler-api/pkg/logger"
)

var tracer = otel.Tracer("account_usecase")

type AddAccountUseCase struct {
	registry  *source.Registry
	store     *library.Store
	resolver  *service.Resolver
	persister *service.StatePersister
	logger    logger.Logger
}

func NewAddAccountUseCase(
	registry *source.Registry,
	store *library.Store,
	resolver *service.Resolver,
	persister *service.StatePersister,
	log logger.Logger,
) *AddAccountUseCase {
	return &AddAccountUseCase{
		registry:  registry,
		store:     store,
		resolver:  resolver,
		persister: persister,
		logger:    log,
	}
}

type AddAccountOutput struct {
	Source   source.Source
	NewPosts int
}

// Execute normalizes and validates the identifier, rejects duplicates
// before touching the network, resolves the profile and refuses private
// ones, then registers the account and ingests its visible timeline.
func (uc *AddAccountUseCase) Execute(ctx context.Context, identifier string) (*AddAccountOutput, error) {
	ctx, span := tracer.Start(ctx, "AddAccount")
	defer span.End()

	username := source.ExtractUsername(identifier)
	if username == "" {
		return nil, apperror.NewInvalidInput("username is not a valid handle or profile URL", nil)
	}
	span.SetAttributes(attribute.String("username", username))

	if uc.registry.Has(username) {
		return nil, apperror.NewConflict("account", "username", username)
	}

	data, err := uc.resolver.Resolve(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if data.Profile.IsPrivate {
		return nil, apperror.NewPermissionDenied(fmt.Sprintf("account '@%s' is private", username))
	}

	src := source.Source{
		Username:   username,
		FullName:   data.Profile.FullName,
		ProfilePic: data.Profile.ProfilePic,
		Followers:  data.Profile.Followers,
		AddedAt:    time.Now().UTC(),
	}
	if err := uc.registry.Add(src); err != nil {
		return nil, err
	}

	newCount := uc.store.Ingest(data.Posts, username)
	uc.logger.Info("tracked account added",
		zap.String("username", username), zap.Int("new_posts", newCount))

	if uc.persister != nil {
		uc.persister.Persist(ctx)
	}

	return &AddAccountOutput{Source: src, NewPosts: newCount}, nil
}
