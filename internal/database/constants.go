package database

import "time"

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Connection pool settings
const (
	// SQLiteMaxOpenConns is 1 because SQLite serialises writers.
	SQLiteMaxOpenConns = 1

	// SQLiteBusyTimeoutMS is how long a statement waits on a locked database.
	SQLiteBusyTimeoutMS = 5000

	DefaultPostgresMaxConns = 10
	DefaultConnMaxIdleTime  = 30 * time.Minute
	DefaultConnMaxLifetime  = time.Hour

	// PingTimeout bounds the connectivity check made while opening.
	PingTimeout = 5 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgUnsupportedDriver           = "unsupported database driver"
	ErrMsgFailedToOpenDatabase        = "failed to open database"
	ErrMsgFailedToConfigureSQLite     = "failed to configure sqlite"
	ErrMsgFailedToPingDatabase        = "failed to ping database"
	ErrMsgFailedToBeginTransaction    = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction   = "failed to commit transaction"
	ErrMsgFailedToRollbackTransaction = "Failed to rollback transaction"
	ErrMsgFailedToRunMigrations       = "failed to run migrations"
	ErrMsgFailedToCreateDataDir       = "failed to create data directory"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
