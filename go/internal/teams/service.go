package teams

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/respond"
	"github.com/mcdev12/scoreboard/go/internal/store"
	"github.com/mcdev12/scoreboard/go/internal/validation"
)

const (
	maxNameLength        = 128
	maxDescriptionLength = 1024
)

// TeamsApp defines what the service layer needs from the teams application
type TeamsApp interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, slug string) (*models.Team, error)
	CreateTeam(ctx context.Context, name string, description *string) (*models.Team, error)
	UpdateTeam(ctx context.Context, slug string, patch models.TeamPatch) (*models.Team, error)
	DeleteTeam(ctx context.Context, slug string) error
}

// Service implements the /teams HTTP endpoints
type Service struct {
	app        TeamsApp
	createTeam http.HandlerFunc
	updateTeam http.HandlerFunc
}

// NewService creates a new teams HTTP service. finder backs the uniqueness
// check of the create pipeline.
func NewService(app TeamsApp, finder validation.TeamFinder) *Service {
	s := &Service{app: app}

	s.createTeam = validation.Chain(validation.Join(
		[]validation.Stage{
			validation.StringValidator(validation.Options{Field: "name", MinLength: 1, MaxLength: maxNameLength}),
			validation.StringValidator(validation.Options{Field: "description", Optional: true, MaxLength: maxDescriptionLength}),
			validation.SlugValidator("name"),
			validation.Check,
			validation.XSSSanitizer("name"),
			validation.GenericSanitizer("description"),
		},
		// The stored name and slug come from the sanitized value, so that is
		// what gets checked for emptiness and uniqueness.
		sanitizedNameChecks(false),
		[]validation.Stage{
			validation.TeamDoesNotExistValidator(finder),
			validation.Check,
			validation.Then(s.createTeamHandler),
		},
	)...)

	s.updateTeam = validation.Chain(validation.Join(
		[]validation.Stage{
			validation.StringValidator(validation.Options{Field: "name", Optional: true, MinLength: 1, MaxLength: maxNameLength}),
			validation.StringValidator(validation.Options{Field: "description", Optional: true, MaxLength: maxDescriptionLength}),
			validation.SlugValidator("name"),
			validation.AtLeastOneBodyValueValidator([]string{"name", "description"}),
			validation.Check,
			validation.XSSSanitizer("name"),
			validation.GenericSanitizer("description"),
		},
		sanitizedNameChecks(true),
		[]validation.Stage{
			validation.Check,
			validation.Then(s.updateTeamHandler),
		},
	)...)

	return s
}

// sanitizedNameChecks rejects a name that sanitizing emptied or reduced to
// something without a slug.
func sanitizedNameChecks(optional bool) []validation.Stage {
	return []validation.Stage{
		validation.StringValidator(validation.Options{Field: "name", Optional: optional, MinLength: 1, MaxLength: maxNameLength}),
		validation.SlugValidator("name"),
	}
}

// Register adds the team routes to mux
func (s *Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /teams", s.ListTeams)
	mux.HandleFunc("POST /teams", s.createTeam)
	mux.HandleFunc("GET /teams/{slug}", s.GetTeam)
	mux.HandleFunc("PATCH /teams/{slug}", s.updateTeam)
	mux.HandleFunc("DELETE /teams/{slug}", s.DeleteTeam)
}

// ListTeams returns every team
func (s *Service) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.app.ListTeams(r.Context())
	if err != nil {
		s.writeError(w, r, err, "unable to list teams")
		return
	}
	respond.JSON(w, r, http.StatusOK, teams)
}

// GetTeam returns a single team by slug
func (s *Service) GetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.app.GetTeam(r.Context(), r.PathValue("slug"))
	if err != nil {
		s.writeError(w, r, err, "unable to get team")
		return
	}
	respond.JSON(w, r, http.StatusOK, team)
}

func (s *Service) createTeamHandler(w http.ResponseWriter, r *http.Request, in *validation.Input) {
	name, _ := in.String("name")

	team, err := s.app.CreateTeam(r.Context(), name, in.StringPtr("description"))
	if err != nil {
		s.writeError(w, r, err, "unable to create team")
		return
	}
	respond.JSON(w, r, http.StatusCreated, team)
}

func (s *Service) updateTeamHandler(w http.ResponseWriter, r *http.Request, in *validation.Input) {
	patch := models.TeamPatch{
		Name:        in.StringPtr("name"),
		Description: in.StringPtr("description"),
	}

	team, err := s.app.UpdateTeam(r.Context(), r.PathValue("slug"), patch)
	if err != nil {
		s.writeError(w, r, err, "unable to update team")
		return
	}
	respond.JSON(w, r, http.StatusOK, team)
}

// DeleteTeam removes a team by slug
func (s *Service) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.app.DeleteTeam(r.Context(), r.PathValue("slug")); err != nil {
		s.writeError(w, r, err, "unable to delete team")
		return
	}
	respond.NoContent(w)
}

// writeError maps app errors onto responses. Store details are logged only.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "team not found")
	case errors.Is(err, ErrSlugTaken):
		respond.JSON(w, r, http.StatusBadRequest, validationError("name", ErrSlugTaken.Error()))
	case errors.Is(err, ErrTeamInUse):
		respond.JSON(w, r, http.StatusBadRequest, validationError("slug", ErrTeamInUse.Error()))
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(generic)
		respond.Error(w, r, http.StatusInternalServerError, generic)
	}
}

func validationError(field, msg string) map[string][]validation.FieldError {
	return map[string][]validation.FieldError{
		"errors": {{Type: "field", Msg: msg, Path: field, Location: "body"}},
	}
}
