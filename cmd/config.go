package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"workorders/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	HTTPPort          string
	StorageDriver     string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	RedisAddr         string
	CatalogPath       string
	ReconcileSchedule string
	LogLevel          string
}

// LoadConfig reads an optional .env file, then the environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	config := Config{
		HTTPPort:          envOr("HTTP_PORT", "8080"),
		StorageDriver:     strings.ToLower(envOr("STORAGE_DRIVER", StorageMemory)),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            envOr("DB_PORT", "5432"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBSslMode:         envOr("DB_SSLMODE", "disable"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		CatalogPath:       os.Getenv("CATALOG_PATH"),
		ReconcileSchedule: envOr("RECONCILE_SCHEDULE", jobs.DefaultReconcileSchedule),
		LogLevel:          strings.ToLower(envOr("LOG_LEVEL", "info")),
	}
	return config, config.Validate()
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	var errList []error

	switch c.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		if c.DBHost == "" {
			errList = append(errList, errors.New("DB_HOST is required for the postgres driver"))
		}
		if c.DBName == "" {
			errList = append(errList, errors.New("DB_NAME is required for the postgres driver"))
		}
	default:
		errList = append(errList, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	if _, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(c.ReconcileSchedule); err != nil {
		errList = append(errList, fmt.Errorf("invalid RECONCILE_SCHEDULE: %w", err))
	}

	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// DSN is the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
