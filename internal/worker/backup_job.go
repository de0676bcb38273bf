package worker

import (
	"context"

	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/metrics"
)

// Uploader stores a JSON backup off-site and returns its key.
type Uploader interface {
	Upload(ctx context.Context, svc backup.Service) (string, error)
}

// BackupJob uploads a full backup each time it runs.
type BackupJob struct {
	uploader Uploader
	backups  backup.Service
}

// NewBackupJob creates a job uploading backups taken through backups.
func NewBackupJob(uploader Uploader, backups backup.Service) *BackupJob {
	return &BackupJob{uploader: uploader, backups: backups}
}

// Process implements Job.
func (j *BackupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgScheduledBackupStarting)

	key, err := j.uploader.Upload(ctx, j.backups)
	metrics.S3Uploads.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	log.Info(LogMsgScheduledBackupCompleted, "key", key)
	return nil
}
