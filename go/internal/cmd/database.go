package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/dbconfig"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

func setupDatabase(ctx context.Context, cfg dbconfig.Config) (*store.Store, error) {
	pool, err := store.Connect(ctx, cfg.DSN())
	if err != nil {
		return nil, err
	}

	connCfg := pool.Config().ConnConfig
	log.Info().
		Str("host", connCfg.Host).
		Uint16("port", connCfg.Port).
		Str("database", connCfg.Database).
		Msg("connected to database")
	return store.New(pool), nil
}
