package store

import (
	"context"
	"fmt"

	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/sqlutil"
)

const (
	listTeams = `SELECT id, name, slug, description FROM teams ORDER BY id`

	getTeamBySlug = `SELECT id, name, slug, description FROM teams WHERE slug = $1`

	teamExists = `SELECT id FROM teams WHERE id = $1`

	insertTeam = `
    INSERT INTO teams (name, slug, description)
    VALUES ($1, $2, $3)
    RETURNING id, name, slug, description`

	deleteTeamBySlug = `DELETE FROM teams WHERE slug = $1`
)

// GetTeams retrieves all teams
func (s *Store) GetTeams(ctx context.Context) ([]models.Team, error) {
	rows, err := s.Query(ctx, listTeams)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return TeamsMapper(rows), nil
}

// GetTeamBySlug retrieves a team by slug
func (s *Store) GetTeamBySlug(ctx context.Context, slug string) (*models.Team, error) {
	return s.getTeam(ctx, getTeamBySlug, slug)
}

func (s *Store) getTeam(ctx context.Context, q string, arg any) (*models.Team, error) {
	rows, err := s.Query(ctx, q, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("team %v: %w", arg, ErrNotFound)
	}
	team := TeamMapper(rows[0])
	if team == nil {
		return nil, fmt.Errorf("team %v: %w", arg, ErrNotFound)
	}
	return team, nil
}

// CheckTeamExists reports whether a team with id exists
func (s *Store) CheckTeamExists(ctx context.Context, id int) (bool, error) {
	rows, err := s.Query(ctx, teamExists, id)
	if err != nil {
		return false, fmt.Errorf("failed to check team: %w", err)
	}
	return len(rows) > 0, nil
}

// InsertTeam creates a new team and returns it with its assigned id
func (s *Store) InsertTeam(ctx context.Context, team models.NewTeam) (*models.Team, error) {
	rows, err := s.Query(ctx, insertTeam, team.Name, team.Slug, sqlutil.ToPgText(team.Description))
	if err != nil {
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}
	if len(rows) == 0 {
		return nil, &Error{Op: "insert team", Kind: ErrStore, Err: fmt.Errorf("no row returned")}
	}
	created := TeamMapper(rows[0])
	if created == nil {
		return nil, &Error{Op: "insert team", Kind: ErrStore, Err: fmt.Errorf("malformed row returned")}
	}
	return created, nil
}

// UpdateTeam applies a conditional update to team id and returns the result
func (s *Store) UpdateTeam(ctx context.Context, id int, fields Fields) (*models.Team, error) {
	rows, err := s.ConditionalUpdate(ctx, "teams", id, fields)
	if err != nil {
		return nil, err
	}
	team := TeamMapper(rows[0])
	if team == nil {
		return nil, fmt.Errorf("team %d: %w", id, ErrNotFound)
	}
	return team, nil
}

// DeleteTeamBySlug hard deletes the team with slug. Exactly one row must be
// affected; none is ErrNotFound and more is a store error.
func (s *Store) DeleteTeamBySlug(ctx context.Context, slug string) error {
	affected, err := s.Exec(ctx, deleteTeamBySlug, slug)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return expectOne("delete team", affected)
}

func expectOne(op string, affected int64) error {
	switch affected {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return &Error{Op: op, Kind: ErrStore, Err: fmt.Errorf("%d rows affected", affected)}
	}
}
