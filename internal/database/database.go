package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Pool interface for database connection pool operations
type Pool interface {
	Ping(ctx context.Context) error
	Close() error
}

// DB is the process-wide connection pool together with the SQL dialect
// its statements must be written in.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Ping verifies a connection can be acquired.
func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

// Open opens the store for driver. For sqlite, dsn is a file path (or
// ":memory:"); for postgres it is a connection URL.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverSQLite:
		return openSQLite(ctx, dsn)
	case DriverPostgres:
		return openPostgres(ctx, dsn)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, driver)
	}
}

func openSQLite(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateDataDir, err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	sqlDB.SetMaxOpenConns(SQLiteMaxOpenConns)
	sqlDB.SetMaxIdleConns(SQLiteMaxOpenConns)

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		fmt.Sprintf("PRAGMA busy_timeout=%d;", SQLiteBusyTimeoutMS),
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConfigureSQLite, err)
		}
	}

	return finishOpen(ctx, sqlDB, SQLite)
}

func openPostgres(ctx context.Context, connString string) (*DB, error) {
	sqlDB, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	sqlDB.SetMaxOpenConns(DefaultPostgresMaxConns)
	sqlDB.SetConnMaxIdleTime(DefaultConnMaxIdleTime)
	sqlDB.SetConnMaxLifetime(DefaultConnMaxLifetime)

	return finishOpen(ctx, sqlDB, Postgres)
}

func finishOpen(ctx context.Context, sqlDB *sql.DB, dialect Dialect) (*DB, error) {
	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase, "dialect", dialect.Name())
	return &DB{DB: sqlDB, Dialect: dialect}, nil
}
