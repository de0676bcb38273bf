package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	LogDir      string

	DBDriver   string
	DBPath     string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	AppPassword     string
	AppPasswordHash string // bcrypt hash, preferred over AppPassword
	SessionSecret   string
	SessionTTL      time.Duration
	TrustedProxies  []string

	DefaultLines  []string
	DefaultShifts []string

	S3 S3Config
}

// S3Config locates the optional off-site backup bucket
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Prefix    string
	// Interval schedules automatic uploads; zero disables them.
	Interval time.Duration
}

// Load loads the configuration from environment variables. A password
// and session secret are required.
func Load() (*Config, error) {
	cfg, err := LoadStorage()
	if err != nil {
		return nil, err
	}

	if cfg.AppPassword == "" && cfg.AppPasswordHash == "" {
		return nil, errors.New(ErrMsgPasswordMissing)
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New(ErrMsgSecretMissing)
	}

	return cfg, nil
}

// LoadStorage loads the configuration without requiring the web sign-in
// settings, for tools that only touch the store.
func LoadStorage() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", DefaultEnvironment),
		LogLevel:        getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat:       getEnv("LOG_FORMAT", DefaultLogFormat),
		LogDir:          getEnv("LOG_DIR", DefaultLogDir),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DefaultDBDriver)),
		DBPath:          getEnv("DB_PATH", DefaultDBPath),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBName:          getEnv("DB_NAME", "scraptracker"),
		AppPassword:     getEnv("APP_PASSWORD", ""),
		AppPasswordHash: getEnv("APP_PASSWORD_HASH", ""),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", DefaultSessionTTL),
		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		DefaultLines:    getEnvAsList("DEFAULT_LINES"),
		DefaultShifts:   getEnvAsList("DEFAULT_SHIFTS"),
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", DefaultS3Region),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Prefix:    getEnv("S3_PREFIX", ""),
			Interval:  getEnvAsDuration("S3_BACKUP_INTERVAL", 0),
		},
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgInvalidPort, err)
	}
	cfg.Port = port

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf(ErrMsgInvalidDriver, cfg.DBDriver)
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsDuration parses a time.Duration variable, falling back to
// defaultValue when it is unset or malformed
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blank items
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// DSN returns the data source for the configured driver: a file path for
// sqlite, a connection URL for postgres.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.GetDBConnString()
	}
	return c.DBPath
}

// IsProduction reports whether the service runs in a production environment
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Environment) {
	case "prod", "production":
		return true
	}
	return false
}
