package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/howlerhq/howler-api/adapters/event"
	"github.com/howlerhq/howler-api/adapters/media_storage"
	"github.com/howlerhq/howler-api/adapters/persistence"
	"github.com/howlerhq/howler-api/internal/application/usecase/backup"
	"github.com/howlerhq/howler-api/internal/config"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// The worker listens for completed scrape runs and archives the library
// snapshot to Cloudinary after each one.
func main() {
	fmt.Println("Starting Howler Backup Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	stateRepo, err := persistence.NewPostgresSnapshotRepo(dbPool, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot init snapshot repository: %v", err)
	}

	// Cloudinary Uploader
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	backupUC := backup.NewBackupUseCase(stateRepo, uploader, appLogger)

	// Kafka Consumer
	runConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicScraperRuns,
		GroupID:  "library-backup-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer runConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicScraperRuns)

	ctx := context.Background()
	for {
		msg, err := runConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.RunCompletedPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(runConsumer, msg)
			continue
		}

		log.Printf("Run completed at %s with %d new posts, archiving snapshot",
			payload.Timestamp.Format("2006-01-02 15:04:05"), payload.TotalNewPosts)

		backupUC.Execute(ctx)
		commitMessage(runConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
