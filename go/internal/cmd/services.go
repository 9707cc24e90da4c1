package main

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/games"
	"github.com/mcdev12/scoreboard/go/internal/health"
	"github.com/mcdev12/scoreboard/go/internal/store"
	"github.com/mcdev12/scoreboard/go/internal/teams"
)

type Services struct {
	Teams  *teams.Service
	Games  *games.Service
	Health *health.Checker
}

func setupServices(db *store.Store, publisher events.Publisher, clock clockwork.Clock) *Services {
	// Store → App layer → Service layer

	// Teams
	teamsApp := teams.NewApp(db, publisher)
	teamsService := teams.NewService(teamsApp, db)

	// Games
	gamesApp := games.NewApp(db, publisher, clock)
	gamesService := games.NewService(gamesApp, db, clock)

	// Readiness reports the broker only when one is connected
	broker, _ := publisher.(health.ConnectionReporter)

	return &Services{
		Teams:  teamsService,
		Games:  gamesService,
		Health: health.NewChecker(db, broker),
	}
}

// setupPublisher connects to NATS when a URL is configured. Without one, or
// when the broker is unreachable, change events are dropped.
func setupPublisher(ctx context.Context, natsURL string) (events.Publisher, func()) {
	if natsURL == "" {
		log.Info().Msg("NATS_URL not set, change events disabled")
		return events.NopPublisher{}, func() {}
	}

	cfg := events.DefaultJetStreamConfig()
	cfg.URL = natsURL
	publisher, err := events.NewJetStreamPublisher(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("nats_url", natsURL).Msg("failed to create JetStream publisher, change events disabled")
		return events.NopPublisher{}, func() {}
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	}
}
