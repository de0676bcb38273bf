package bootstrap

import (
	"context"
	"io"
	"log/slog"

	"github.com/osse101/ScrapTracker_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server  *server.Server
	Backups *BackupSchedule
	DB      io.Closer
}

// GracefulShutdown stops the HTTP server and scheduled backups first so
// in-flight work finishes against an open store, then closes the store.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Backups != nil {
		components.Backups.Stop()
	}

	if components.DB != nil {
		if err := components.DB.Close(); err != nil {
			slog.Error(LogMsgDatabaseCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
