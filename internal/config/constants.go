package config

import "time"

// Defaults applied when the corresponding variable is unset
const (
	DefaultPort        = 8080
	DefaultEnvironment = "dev"
	DefaultLogLevel    = "INFO"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultDBDriver    = "sqlite"
	DefaultDBPath      = "data/tracker.db"
	DefaultSessionTTL  = 12 * time.Hour
	DefaultS3Region    = "us-east-1"
)

// Error messages
const (
	ErrMsgInvalidPort     = "invalid PORT value: %w"
	ErrMsgInvalidDriver   = "DB_DRIVER must be sqlite or postgres, got %q"
	ErrMsgPasswordMissing = "APP_PASSWORD or APP_PASSWORD_HASH environment variable must be set"
	ErrMsgSecretMissing   = "SESSION_SECRET environment variable must be set"
)
