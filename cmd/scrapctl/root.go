package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/osse101/ScrapTracker_Go/internal/bootstrap"
	"github.com/osse101/ScrapTracker_Go/internal/config"
	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/handler"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
)

// env holds the process seams the commands reach through.
type env struct {
	loadConfig   func() (*config.Config, error)
	readPassword func(fd int) ([]byte, error)
	stdinFd      int
}

func defaultEnv() env {
	return env{
		loadConfig:   config.LoadStorage,
		readPassword: term.ReadPassword,
		stdinFd:      int(os.Stdin.Fd()),
	}
}

func newRootCmd(e env) *cobra.Command {
	root := &cobra.Command{
		Use:           "scrapctl",
		Short:         "Maintain a scrap tracker store",
		Version:       handler.CurrentVersion().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMigrateCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newUploadCmd(e),
		newHashPasswordCmd(e),
	)
	return root
}

// session is an opened store with its services, closed by the caller.
type session struct {
	cfg  *config.Config
	db   *database.DB
	svcs *bootstrap.Services
}

func (s *session) Close() error {
	return s.db.Close()
}

// openSession loads the storage configuration, routes logs to stderr and
// opens the migrated store with its option defaults seeded.
func openSession(ctx context.Context, cmd *cobra.Command, e env) (*session, error) {
	cfg, err := e.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "scrapctl", handler.CurrentVersion().Version, cfg.Environment, false)
	logger.InitLoggerWithWriter(logCfg, cmd.ErrOrStderr())

	db, err := bootstrap.OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svcs, err := bootstrap.InitializeServices(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &session{cfg: cfg, db: db, svcs: svcs}, nil
}
