package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to
	// the one being opened
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingTracker     = "Starting scrap tracker"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Store and Service Wiring
// =============================================================================

const (
	// StartupTimeout bounds opening, migrating and seeding the store
	StartupTimeout = 30 * time.Second

	LogMsgDatabaseReady      = "Database ready"
	LogMsgOptionsSeeded      = "Option defaults ensured"
	LogMsgS3BackupsEnabled   = "S3 backups enabled"
	ErrMsgFailedOpenDatabase = "failed to open database"
	ErrMsgFailedMigrate      = "failed to migrate database"
	ErrMsgFailedSeedOptions  = "failed to seed option defaults"
	ErrMsgFailedInitS3       = "failed to initialize S3 uploader"
	ErrMsgFailedInitAuth     = "failed to initialize authentication"
)

// Scheduled backups run one upload at a time
const (
	BackupJobName     = "s3-backup"
	BackupWorkerCount = 1
	BackupQueueSize   = 1
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgDatabaseCloseFailed  = "Database close failed"
)
