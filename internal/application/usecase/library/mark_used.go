package library

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/adapters/event"
	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/library"
	"github.com/howlerhq/howler-api/pkg/logger"
)

type MarkUsedUseCase struct {
	store       *library.Store
	persister   *service.StatePersister
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewMarkUsedUseCase(
	store *library.Store,
	persister *service.StatePersister,
	kafkaClient *event.KafkaProducerClient,
	log logger.Logger,
) *MarkUsedUseCase {
	return &MarkUsedUseCase{
		store:       store,
		persister:   persister,
		kafkaClient: kafkaClient,
		logger:      log,
	}
}

// Execute toggles the used flag on the item matching either its library
// id or its source post id.
func (uc *MarkUsedUseCase) Execute(ctx context.Context, id string, used bool) (library.MediaItem, error) {
	item, err := uc.store.MarkUsed(id, used)
	if err != nil {
		return library.MediaItem{}, err
	}

	if uc.persister != nil {
		uc.persister.Persist(ctx)
	}
	if uc.kafkaClient != nil && used {
		payload := event.LibraryEventPayload{
			EventType: event.LibraryEventTypeUsed,
			LibraryID: item.LibraryID,
			PostID:    item.ID,
			Account:   item.SourceAccount,
			Timestamp: time.Now().UTC(),
		}
		if err := uc.kafkaClient.PublishLibraryEvent(ctx, payload); err != nil {
			uc.logger.Error("failed to publish library used event", err, zap.String("library_id", item.LibraryID))
		}
	}

	return item, nil
}
