package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/ScrapTracker_Go/internal/bootstrap"
	"github.com/osse101/ScrapTracker_Go/internal/config"
	"github.com/osse101/ScrapTracker_Go/internal/handler"
)

// shutdownTimeout bounds draining in-flight requests on SIGINT/SIGTERM.
const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Scrap tracker failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	version := handler.CurrentVersion().Version
	logFile, err := bootstrap.SetupLogger(cfg, version)
	if err != nil {
		return err
	}
	defer logFile.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Warn("Environment validation failed", "error", err)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), bootstrap.StartupTimeout)
	defer cancel()

	db, err := bootstrap.OpenDatabase(startupCtx, cfg)
	if err != nil {
		return err
	}

	svcs, err := bootstrap.InitializeServices(startupCtx, cfg, db)
	if err != nil {
		db.Close()
		return err
	}

	srv, err := bootstrap.NewServer(cfg, svcs)
	if err != nil {
		db.Close()
		return err
	}

	backups := bootstrap.StartBackupSchedule(cfg, svcs)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			if backups != nil {
				backups.Stop()
			}
			db.Close()
			return fmt.Errorf("server failed to start: %w", err)
		}
	}

	ctx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:  srv,
		Backups: backups,
		DB:      db,
	})
	return nil
}
