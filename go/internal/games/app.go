package games

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

// ErrSameTeam is returned when a game would have the same home and away team.
var ErrSameTeam = errors.New("home and away teams must be different")

// GamesRepository defines what the app layer needs from the store
type GamesRepository interface {
	GetGames(ctx context.Context) ([]models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	InsertGame(ctx context.Context, game models.NewGame) (*models.Game, error)
	UpdateGame(ctx context.Context, id int, fields store.Fields) (*models.Game, error)
	DeleteGameByID(ctx context.Context, id int) error
}

// App handles games business logic
type App struct {
	repo      GamesRepository
	publisher events.Publisher
	clock     clockwork.Clock
}

// NewApp creates a new games App
func NewApp(repo GamesRepository, publisher events.Publisher, clock clockwork.Clock) *App {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &App{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
	}
}

// ListGames retrieves all games ordered by date
func (a *App) ListGames(ctx context.Context) ([]models.Game, error) {
	games, err := a.repo.GetGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// GetGame retrieves a game by id
func (a *App) GetGame(ctx context.Context, id int) (*models.Game, error) {
	game, err := a.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// CreateGame registers a played game
func (a *App) CreateGame(ctx context.Context, game models.NewGame) (*models.Game, error) {
	if game.HomeID == game.AwayID {
		return nil, ErrSameTeam
	}

	created, err := a.repo.InsertGame(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("game_id", created.ID).
		Int("home", created.Home.ID).
		Int("away", created.Away.ID).
		Msg("created game")
	events.Notify(ctx, a.publisher, events.GameCreated, created)
	return created, nil
}

// UpdateGame applies a partial update. The resulting home and away teams are
// checked against each other, including the side the patch leaves untouched.
func (a *App) UpdateGame(ctx context.Context, id int, patch models.GamePatch) (*models.Game, error) {
	existing, err := a.repo.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("game not found: %w", err)
	}

	home, away := existing.Home.ID, existing.Away.ID
	if patch.Home != nil {
		home = *patch.Home
	}
	if patch.Away != nil {
		away = *patch.Away
	}
	if home == away {
		return nil, ErrSameTeam
	}

	fields := store.Fields{}.
		Set("date", patch.Date).
		Set("home", patch.Home).
		Set("away", patch.Away).
		Set("home_score", patch.HomeScore).
		Set("away_score", patch.AwayScore).
		Set("updated", a.clock.Now())

	game, err := a.repo.UpdateGame(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("game_id", game.ID).Strs("fields", fields.Filter().Names()).Msg("updated game")
	events.Notify(ctx, a.publisher, events.GameUpdated, game)
	return game, nil
}

// DeleteGame hard deletes a game
func (a *App) DeleteGame(ctx context.Context, id int) error {
	if err := a.repo.DeleteGameByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("game_id", id).Msg("deleted game")
	events.Notify(ctx, a.publisher, events.GameDeleted, map[string]int{"id": id})
	return nil
}
