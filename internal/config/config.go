package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// BootstrapAdminEmail/Password seed the first panel login at boot when
	// set. Existing accounts are never touched.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string

	// StrictTransitions turns the lifecycle transition tables into hard
	// guards. Off by default: the panel historically allowed arbitrary
	// status writes (including backward ones, e.g. reopening a closed
	// ticket), and some workflows rely on that.
	StrictTransitions bool

	DB      DatabaseConfig
	Redis   RedisConfig
	Billing BillingConfig
	Worker  WorkerConfig
	Archive ArchiveConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// BillingConfig contains invoicing parameters.
type BillingConfig struct {
	// DueDays is how many days after issuance a cycle invoice falls due.
	DueDays int
}

// WorkerConfig contains interval configuration for background workers.
// A zero interval disables the corresponding worker.
type WorkerConfig struct {
	OverdueSweepInterval time.Duration
	DeviceCheckInterval  time.Duration
	DeviceOfflineAfter   time.Duration
}

// ArchiveConfig contains S3-compatible storage settings for invoice exports.
type ArchiveConfig struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.StrictTransitions = getEnvBool("STRICT_TRANSITIONS", false)
	cfg.BootstrapAdminEmail = getEnv("ADMIN_EMAIL", "")
	cfg.BootstrapAdminPassword = getEnv("ADMIN_PASSWORD", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Billing
	cfg.Billing = BillingConfig{
		DueDays: getEnvInt("BILLING_DUE_DAYS", 14),
	}

	// Archive (S3-compatible, optional)
	cfg.Archive = ArchiveConfig{
		Region:          getEnv("ARCHIVE_S3_REGION", "ap-southeast-3"),
		Bucket:          getEnv("ARCHIVE_S3_BUCKET", ""),
		Endpoint:        getEnv("ARCHIVE_S3_ENDPOINT", "https://s3.ap-southeast-3.amazonaws.com"),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Workers (durations). The overdue sweep ships disabled: nothing in the
	// panel ever recomputed overdue from due_date, so turning it on is an
	// explicit operator decision.
	var err error
	if cfg.Worker.OverdueSweepInterval, err = parseDurationEnv("OVERDUE_SWEEP_INTERVAL", "0s"); err != nil {
		return nil, fmt.Errorf("invalid OVERDUE_SWEEP_INTERVAL: %w", err)
	}
	if cfg.Worker.DeviceCheckInterval, err = parseDurationEnv("DEVICE_CHECK_INTERVAL", "1m"); err != nil {
		return nil, fmt.Errorf("invalid DEVICE_CHECK_INTERVAL: %w", err)
	}
	if cfg.Worker.DeviceOfflineAfter, err = parseDurationEnv("DEVICE_OFFLINE_AFTER", "5m"); err != nil {
		return nil, fmt.Errorf("invalid DEVICE_OFFLINE_AFTER: %w", err)
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// getEnvBool returns the value of an environment variable as a boolean or a default if empty/invalid.
func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
