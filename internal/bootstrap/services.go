package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/ScrapTracker_Go/internal/auth"
	"github.com/osse101/ScrapTracker_Go/internal/backup"
	"github.com/osse101/ScrapTracker_Go/internal/config"
	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/database/sqlstore"
	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/entry"
	"github.com/osse101/ScrapTracker_Go/internal/handler"
	"github.com/osse101/ScrapTracker_Go/internal/option"
	"github.com/osse101/ScrapTracker_Go/internal/repository"
	"github.com/osse101/ScrapTracker_Go/internal/scheduler"
	"github.com/osse101/ScrapTracker_Go/internal/server"
	"github.com/osse101/ScrapTracker_Go/internal/worker"
)

// Services holds the store and every service built over it. This provides
// a single place for dependency wiring shared by the server and the CLI.
type Services struct {
	Store   repository.Store
	Entries entry.Service
	Options option.Service
	Backups backup.Service
	// Uploader is nil when no S3 bucket is configured.
	Uploader *backup.Uploader
}

// OpenDatabase opens the configured store and applies pending migrations.
func OpenDatabase(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenDatabase, err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	slog.Info(LogMsgDatabaseReady, "driver", cfg.DBDriver)
	return db, nil
}

// OptionDefaults returns the standard option seeds with any configured
// overrides applied.
func OptionDefaults(cfg *config.Config) option.Defaults {
	defaults := option.StandardDefaults()
	if len(cfg.DefaultLines) > 0 {
		defaults[domain.OptionGroupLine] = cfg.DefaultLines
	}
	if len(cfg.DefaultShifts) > 0 {
		defaults[domain.OptionGroupShift] = cfg.DefaultShifts
	}
	return defaults
}

// InitializeServices builds the services over db and seeds any empty
// option group.
func InitializeServices(ctx context.Context, cfg *config.Config, db *database.DB) (*Services, error) {
	store := sqlstore.New(db)
	defaults := OptionDefaults(cfg)

	svcs := &Services{
		Store:   store,
		Entries: entry.NewService(store.Entries()),
		Options: option.NewService(store, defaults),
		Backups: backup.NewService(store, defaults),
	}

	for _, group := range domain.OptionGroups {
		if err := svcs.Options.EnsureDefaults(ctx, group); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedSeedOptions, err)
		}
	}
	slog.Debug(LogMsgOptionsSeeded)

	if cfg.S3.Bucket != "" {
		uploader, err := backup.NewS3Uploader(ctx, backup.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitS3, err)
		}
		svcs.Uploader = uploader
		slog.Info(LogMsgS3BackupsEnabled, "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
	}

	return svcs, nil
}

// BackupUploader returns the uploader as a handler dependency, nil when
// S3 backups are disabled.
func (s *Services) BackupUploader() handler.BackupUploader {
	if s.Uploader == nil {
		return nil
	}
	return s.Uploader
}

// NewServer builds the password gate and the HTTP server over svcs.
func NewServer(cfg *config.Config, svcs *Services) (*server.Server, error) {
	verifier, err := auth.NewVerifier(cfg.AppPassword, cfg.AppPasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitAuth, err)
	}
	sessions, err := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitAuth, err)
	}

	return server.NewServer(server.Config{
		Port:           cfg.Port,
		TrustedProxies: cfg.TrustedProxies,
		SecureCookies:  cfg.IsProduction(),
		Store:          svcs.Store,
		Verifier:       verifier,
		Sessions:       sessions,
		Entries:        svcs.Entries,
		Options:        svcs.Options,
		Backups:        svcs.Backups,
		Uploader:       svcs.BackupUploader(),
	})
}

// BackupSchedule runs the periodic S3 upload.
type BackupSchedule struct {
	pool      *worker.Pool
	scheduler *scheduler.Scheduler
}

// StartBackupSchedule starts periodic S3 uploads when both a bucket and an
// interval are configured. It returns nil otherwise.
func StartBackupSchedule(cfg *config.Config, svcs *Services) *BackupSchedule {
	if svcs.Uploader == nil || cfg.S3.Interval <= 0 {
		return nil
	}

	pool := worker.NewPool(BackupWorkerCount, BackupQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(BackupJobName, cfg.S3.Interval, worker.NewBackupJob(svcs.Uploader, svcs.Backups))

	return &BackupSchedule{pool: pool, scheduler: sched}
}

// Stop stops scheduling and waits for a running upload to return.
func (b *BackupSchedule) Stop() {
	b.scheduler.Stop()
	b.pool.Stop()
}
