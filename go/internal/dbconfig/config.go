package dbconfig

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ErrMissingDatabaseURL is returned when DATABASE_URL is not configured.
var ErrMissingDatabaseURL = errors.New("missing DATABASE_URL")

// Config holds Postgres connection settings.
type Config struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string `env:"DB_NAME" envDefault:"scoreboard"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// NewConfigFromEnv reads DATABASE_URL and DB_* environment variables (with defaults).
func NewConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse database env: %w", err)
	}
	return cfg, nil
}

// RequireURL fails when no explicit connection string was configured.
func (c Config) RequireURL() error {
	if c.URL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}

// DSN returns the Postgres connection URL. DATABASE_URL wins over the DB_* parts.
func (c Config) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}
