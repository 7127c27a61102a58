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

type DeleteItemUseCase struct {
	store       *library.Store
	persister   *service.StatePersister
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewDeleteItemUseCase(
	store *library.Store,
	persister *service.StatePersister,
	kafkaClient *event.KafkaProducerClient,
	log logger.Logger,
) *DeleteItemUseCase {
	return &DeleteItemUseCase{
		store:       store,
		persister:   persister,
		kafkaClient: kafkaClient,
		logger:      log,
	}
}

func (uc *DeleteItemUseCase) Execute(ctx context.Context, id string) error {
	if err := uc.store.Delete(id); err != nil {
		return err
	}

	if uc.persister != nil {
		uc.persister.Persist(ctx)
	}
	if uc.kafkaClient != nil {
		payload := event.LibraryEventPayload{
			EventType: event.LibraryEventTypeDeleted,
			PostID:    id,
			Timestamp: time.Now().UTC(),
		}
		if err := uc.kafkaClient.PublishLibraryEvent(ctx, payload); err != nil {
			uc.logger.Error("failed to publish library deleted event", err, zap.String("id", id))
		}
	}
	return nil
}
