package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/scoreboard/go/internal/dbconfig"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/slug"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

// SeedTeam mirrors a team entry of the YAML snapshot
type SeedTeam struct {
	Name        string  `yaml:"name"`
	Description *string `yaml:"description"`
}

// SeedGame references teams by slug. Its date is DaysAgo days before the run.
type SeedGame struct {
	Home      string `yaml:"home"`
	Away      string `yaml:"away"`
	DaysAgo   int    `yaml:"days_ago"`
	HomeScore int    `yaml:"home_score"`
	AwayScore int    `yaml:"away_score"`
}

type Snapshot struct {
	Teams []SeedTeam `yaml:"teams"`
	Games []SeedGame `yaml:"games"`
}

// seedStore is the part of the store the seeder writes through
type seedStore interface {
	InsertTeam(ctx context.Context, team models.NewTeam) (*models.Team, error)
	GetTeamBySlug(ctx context.Context, slug string) (*models.Team, error)
	InsertGame(ctx context.Context, game models.NewGame) (*models.Game, error)
}

type summary struct {
	total, inserted, skipped, errs int
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// seedTeams inserts every team. Teams that already exist are skipped.
func seedTeams(ctx context.Context, db seedStore, teams []SeedTeam) summary {
	sum := summary{total: len(teams)}
	for _, t := range teams {
		_, err := db.InsertTeam(ctx, models.NewTeam{
			Name:        t.Name,
			Slug:        slug.Make(t.Name),
			Description: t.Description,
		})
		switch {
		case errors.Is(err, store.ErrConflict):
			sum.skipped++
		case err != nil:
			log.Error().Err(err).Str("team", t.Name).Msg("error inserting team")
			sum.errs++
		default:
			sum.inserted++
		}
	}
	return sum
}

// seedGames resolves both team slugs and inserts the game dated relative to now.
func seedGames(ctx context.Context, db seedStore, games []SeedGame, now time.Time) summary {
	sum := summary{total: len(games)}
	for _, g := range games {
		home, err := db.GetTeamBySlug(ctx, g.Home)
		if err != nil {
			log.Error().Err(err).Str("team", g.Home).Msg("unknown home team")
			sum.errs++
			continue
		}
		away, err := db.GetTeamBySlug(ctx, g.Away)
		if err != nil {
			log.Error().Err(err).Str("team", g.Away).Msg("unknown away team")
			sum.errs++
			continue
		}

		if _, err := db.InsertGame(ctx, models.NewGame{
			Date:      now.AddDate(0, 0, -g.DaysAgo),
			HomeID:    home.ID,
			AwayID:    away.ID,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
		}); err != nil {
			log.Error().Err(err).Str("home", g.Home).Str("away", g.Away).Msg("error inserting game")
			sum.errs++
			continue
		}
		sum.inserted++
	}
	return sum
}

func main() {
	path := flag.String("file", "go/internal/assets/seed.yaml", "YAML snapshot to load")
	reset := flag.Bool("reset", false, "drop and recreate the schema before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	zerolog.DefaultContextLogger = &log.Logger

	// 1) Load the YAML snapshot
	snap, err := loadSnapshot(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("load snapshot")
	}

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("database config")
	}
	ctx := context.Background()
	pool, err := store.Connect(ctx, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect")
	}
	db := store.New(pool)
	defer db.Close()

	if *reset {
		if err := db.ResetSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("reset schema")
		}
		log.Info().Msg("schema recreated")
	}

	// 3) Insert and count
	teams := seedTeams(ctx, db, snap.Teams)
	games := seedGames(ctx, db, snap.Games, time.Now().UTC().Truncate(time.Hour))

	// 4) Print summary
	fmt.Printf(
		"Teams seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		teams.total, teams.inserted, teams.skipped, teams.errs,
	)
	fmt.Printf(
		"Games seed complete: %d total, %d inserted, %d errors\n",
		games.total, games.inserted, games.errs,
	)
}
