package store

import (
	"context"
	"fmt"

	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/sqlutil"
)

const selectGames = `
  SELECT g.id,
       g.date,
       home_team.id AS home_id, home_team.name AS home_name, home_team.slug AS home_slug, home_team.description AS home_description,
       away_team.id AS away_id, away_team.name AS away_name, away_team.slug AS away_slug, away_team.description AS away_description,
       g.home_score,
       g.away_score,
       g.created,
       g.updated
  FROM games g
  JOIN teams home_team ON g.home = home_team.id
  JOIN teams away_team ON g.away = away_team.id`

const (
	listGames = selectGames + `
  ORDER BY g.date`

	getGameByID = selectGames + `
  WHERE g.id = $1
  ORDER BY g.date`

	insertGame = `
    INSERT INTO games (date, home, away, home_score, away_score)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id`

	deleteGameByID = `DELETE FROM games WHERE id = $1`

	countGamesForTeam = `SELECT count(*) AS games FROM games WHERE home = $1 OR away = $1`
)

// GetGames retrieves all games ordered by date
func (s *Store) GetGames(ctx context.Context) ([]models.Game, error) {
	rows, err := s.Query(ctx, listGames)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return GamesMapper(rows), nil
}

// GetGameByID retrieves a game with both teams joined in
func (s *Store) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	rows, err := s.Query(ctx, getGameByID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	game := GameMapper(rows[0])
	if game == nil {
		return nil, fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	return game, nil
}

// InsertGame inserts a game and re-fetches the joined representation in the
// same transaction so store defaults (created, updated) are reflected.
func (s *Store) InsertGame(ctx context.Context, game models.NewGame) (*models.Game, error) {
	var created *models.Game

	err := sqlutil.Run(ctx, s.db, s.withTx, func(q *Store) error {
		rows, err := q.Query(ctx, insertGame, game.Date, game.HomeID, game.AwayID, game.HomeScore, game.AwayScore)
		if err != nil {
			return fmt.Errorf("failed to insert game: %w", err)
		}
		if len(rows) == 0 {
			return &Error{Op: "insert game", Kind: ErrStore, Err: fmt.Errorf("game insertion failed")}
		}
		id, ok := sqlutil.AsInt(rows[0]["id"])
		if !ok {
			return &Error{Op: "insert game", Kind: ErrStore, Err: fmt.Errorf("no id returned")}
		}

		created, err = q.GetGameByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateGame applies a conditional update to game id and re-fetches it joined
func (s *Store) UpdateGame(ctx context.Context, id int, fields Fields) (*models.Game, error) {
	if _, err := s.ConditionalUpdate(ctx, "games", id, fields); err != nil {
		return nil, err
	}
	return s.GetGameByID(ctx, id)
}

// DeleteGameByID hard deletes a game
func (s *Store) DeleteGameByID(ctx context.Context, id int) error {
	affected, err := s.Exec(ctx, deleteGameByID, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return expectOne("delete game", affected)
}

// CountGamesForTeam counts games where team id plays home or away
func (s *Store) CountGamesForTeam(ctx context.Context, id int) (int, error) {
	rows, err := s.Query(ctx, countGamesForTeam, id)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	n, _ := sqlutil.AsInt(rows[0]["games"])
	return n, nil
}
