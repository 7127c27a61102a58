package account

import (
	"context"

	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/internal/domain/source"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type RemoveAccountUseCase struct {
	registry  *source.Registry
	store     *library.Store
	persister *service.StatePersister
	logger    logger.Logger
}

func NewRemoveAccountUseCase(
	registry *source.Registry,
	store *library.Store,
	persister *service.StatePersister,
	log logger.Logger,
) *RemoveAccountUseCase {
	return &RemoveAccountUseCase{
		registry:  registry,
		store:     store,
		persister: persister,
		logger:    log,
	}
}

// Execute untracks the account; with removeMedia set, its library items
// are deleted as well.
func (uc *RemoveAccountUseCase) Execute(ctx context.Context, username string, removeMedia bool) error {
	if err := uc.registry.Remove(username); err != nil {
		return err
	}

	removed := 0
	if removeMedia {
		removed = uc.store.DeleteByAccount(username)
	}
	uc.logger.Info("tracked account removed",
		zap.String("username", username),
		zap.Bool("remove_media", removeMedia),
		zap.Int("items_removed", removed))

	if uc.persister != nil {
		uc.persister.Persist(ctx)
	}
	return nil
}
