package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/dbconfig"
)

// Config is the server configuration read from the environment.
type Config struct {
	Port        string   `env:"PORT" envDefault:"3000"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"console"`
	NatsURL     string   `env:"NATS_URL"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	DB dbconfig.Config
}

// loadConfig parses the environment. A missing DATABASE_URL is an error.
func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.DB.RequireURL(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setupLogging(cfg Config) {
	if !strings.EqualFold(cfg.LogFormat, "json") {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// zerolog.Ctx falls back to the global logger for contexts without one
	zerolog.DefaultContextLogger = &log.Logger
}
