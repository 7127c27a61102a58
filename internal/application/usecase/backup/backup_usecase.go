package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/howlerhq/howler-api/internal/application/service"
	"github.com/howlerhq/howler-api/internal/domain/state"
	"github.com/howlerhq/howler-api/pkg/logger"
)

// BackupUseCase archives the persisted library snapshot as a timestamped
// JSON dump in Cloudinary. The worker runs it after every completed
// scrape run.
type BackupUseCase struct {
	stateRepo state.Repository
	uploader  service.Uploader
	logger    logger.Logger
}

func NewBackupUseCase(stateRepo state.Repository, uploader service.Uploader, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		stateRepo: stateRepo,
		uploader:  uploader,
		logger:    log,
	}
}

func (uc *BackupUseCase) Execute(ctx context.Context) {
	uc.logger.Info("Starting library snapshot backup...")

	snap, err := uc.stateRepo.Load(ctx)
	if err != nil {
		uc.logger.Error("failed to load state snapshot for backup", err)
		return
	}
	if snap == nil {
		uc.logger.Warn("no snapshot persisted yet, skipping backup")
		return
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		uc.logger.Error("failed to marshal snapshot", err)
		return
	}

	timestamp := time.Now().UTC().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("library-%s.json", timestamp)
	folder := "backups/library"
	publicID := fmt.Sprintf("%s/%s", folder, filename)

	uploadURL, err := uc.uploader.Upload(ctx, bytes.NewReader(payload), folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload backup to Cloudinary", err)
		return
	}

	uc.logger.Info("Library backup completed and uploaded successfully",
		zap.String("url", uploadURL),
		zap.String("public_id", publicID),
		zap.Int("items", len(snap.Items)),
	)
}
