package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/slug"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

var (
	// ErrSlugTaken is returned when another team already owns the derived slug.
	ErrSlugTaken = errors.New("team with name already exists")
	// ErrTeamInUse is returned when deleting a team that games still reference.
	ErrTeamInUse = errors.New("team is referenced by games")
)

// TeamsRepository defines what the app layer needs from the store
type TeamsRepository interface {
	GetTeams(ctx context.Context) ([]models.Team, error)
	GetTeamBySlug(ctx context.Context, slug string) (*models.Team, error)
	InsertTeam(ctx context.Context, team models.NewTeam) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, fields store.Fields) (*models.Team, error)
	DeleteTeamBySlug(ctx context.Context, slug string) error
	CountGamesForTeam(ctx context.Context, id int) (int, error)
}

// App handles teams business logic
type App struct {
	repo      TeamsRepository
	publisher events.Publisher
}

// NewApp creates a new teams App
func NewApp(repo TeamsRepository, publisher events.Publisher) *App {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &App{
		repo:      repo,
		publisher: publisher,
	}
}

// ListTeams retrieves all teams
func (a *App) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := a.repo.GetTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam retrieves a team by slug
func (a *App) GetTeam(ctx context.Context, teamSlug string) (*models.Team, error) {
	team, err := a.repo.GetTeamBySlug(ctx, teamSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

// CreateTeam derives the slug from the name and inserts the team
func (a *App) CreateTeam(ctx context.Context, name string, description *string) (*models.Team, error) {
	team, err := a.repo.InsertTeam(ctx, models.NewTeam{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, fmt.Errorf("failed to create team: %w", ErrSlugTaken)
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("team_id", team.ID).Str("slug", team.Slug).Msg("created team")
	events.Notify(ctx, a.publisher, events.TeamCreated, team)
	return team, nil
}

// UpdateTeam applies a partial update to the team with teamSlug. The slug is
// re-derived only when the name changes it.
func (a *App) UpdateTeam(ctx context.Context, teamSlug string, patch models.TeamPatch) (*models.Team, error) {
	existing, err := a.repo.GetTeamBySlug(ctx, teamSlug)
	if err != nil {
		return nil, fmt.Errorf("team not found: %w", err)
	}

	fields := store.Fields{}
	if patch.Name != nil {
		fields = fields.Set("name", patch.Name)
		if newSlug := slug.Make(*patch.Name); newSlug != existing.Slug {
			if err := a.ensureSlugFree(ctx, newSlug, existing.ID); err != nil {
				return nil, err
			}
			fields = fields.Set("slug", newSlug)
		}
	}
	fields = fields.Set("description", patch.Description)

	team, err := a.repo.UpdateTeam(ctx, existing.ID, fields)
	switch {
	case errors.Is(err, store.ErrNoFields):
		return existing, nil
	case errors.Is(err, store.ErrConflict):
		return nil, fmt.Errorf("failed to update team: %w", ErrSlugTaken)
	case err != nil:
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("team_id", team.ID).Str("slug", team.Slug).Msg("updated team")
	events.Notify(ctx, a.publisher, events.TeamUpdated, team)
	return team, nil
}

func (a *App) ensureSlugFree(ctx context.Context, newSlug string, ownerID int) error {
	other, err := a.repo.GetTeamBySlug(ctx, newSlug)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check slug: %w", err)
	case other.ID != ownerID:
		return ErrSlugTaken
	}
	return nil
}

// DeleteTeam deletes a team by slug. Teams that still play in games are kept.
func (a *App) DeleteTeam(ctx context.Context, teamSlug string) error {
	team, err := a.repo.GetTeamBySlug(ctx, teamSlug)
	if err != nil {
		return fmt.Errorf("team not found: %w", err)
	}

	n, err := a.repo.CountGamesForTeam(ctx, team.ID)
	if err != nil {
		return fmt.Errorf("failed to count games: %w", err)
	}
	if n > 0 {
		return ErrTeamInUse
	}

	if err := a.repo.DeleteTeamBySlug(ctx, teamSlug); err != nil {
		if store.IsForeignKeyViolation(err) {
			return ErrTeamInUse
		}
		return fmt.Errorf("failed to delete team: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int("team_id", team.ID).Str("slug", team.Slug).Msg("deleted team")
	events.Notify(ctx, a.publisher, events.TeamDeleted, team)
	return nil
}
