package games

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/respond"
	"github.com/mcdev12/scoreboard/go/internal/store"
	"github.com/mcdev12/scoreboard/go/internal/validation"
)

// GamesApp defines what the service layer needs from the games application
type GamesApp interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	GetGame(ctx context.Context, id int) (*models.Game, error)
	CreateGame(ctx context.Context, game models.NewGame) (*models.Game, error)
	UpdateGame(ctx context.Context, id int, patch models.GamePatch) (*models.Game, error)
	DeleteGame(ctx context.Context, id int) error
}

// Service implements the /games HTTP endpoints
type Service struct {
	app        GamesApp
	createGame http.HandlerFunc
	updateGame http.HandlerFunc
}

// NewService creates a new games HTTP service. teams backs the id checks and
// clock bounds the accepted game dates.
func NewService(app GamesApp, teams validation.TeamChecker, clock clockwork.Clock) *Service {
	s := &Service{app: app}

	gameFields := func(optional bool) []validation.Stage {
		return []validation.Stage{
			validation.DateValidator(clock, validation.Options{Field: "date", Optional: optional}),
			validation.ScoreValidator(validation.Options{Field: "home_score", Optional: optional}),
			validation.ScoreValidator(validation.Options{Field: "away_score", Optional: optional}),
			validation.IDValidator(teams, validation.Options{Field: "home", Optional: optional}),
			validation.IDValidator(teams, validation.Options{Field: "away", Optional: optional}),
		}
	}

	s.createGame = validation.Chain(validation.Join(
		gameFields(false),
		[]validation.Stage{
			validation.NotSameTeamValidator("home", "away", ErrSameTeam.Error()),
			validation.Check,
			validation.Then(s.createGameHandler),
		},
	)...)

	s.updateGame = validation.Chain(validation.Join(
		gameFields(true),
		[]validation.Stage{
			validation.AtLeastOneBodyValueValidator([]string{"date", "home_score", "away_score", "home", "away"}),
			validation.NotSameTeamValidator("home", "away", ErrSameTeam.Error()),
			validation.Check,
			validation.Then(s.updateGameHandler),
		},
	)...)

	return s
}

// Register adds the game routes to mux
func (s *Service) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /games", s.ListGames)
	mux.HandleFunc("POST /games", s.createGame)
	mux.HandleFunc("GET /games/{id}", s.GetGame)
	mux.HandleFunc("PATCH /games/{id}", s.withID(s.updateGame))
	mux.HandleFunc("DELETE /games/{id}", s.DeleteGame)
}

// ListGames returns every game ordered by date
func (s *Service) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.app.ListGames(r.Context())
	if err != nil {
		s.writeError(w, r, err, "unable to list games")
		return
	}
	respond.JSON(w, r, http.StatusOK, games)
}

// GetGame returns a single game
func (s *Service) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "game not found")
		return
	}

	game, err := s.app.GetGame(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "unable to get game")
		return
	}
	respond.JSON(w, r, http.StatusOK, game)
}

func (s *Service) createGameHandler(w http.ResponseWriter, r *http.Request, in *validation.Input) {
	date, _ := in.Time("date")
	home, _ := in.Int("home")
	away, _ := in.Int("away")
	homeScore, _ := in.Int("home_score")
	awayScore, _ := in.Int("away_score")

	game, err := s.app.CreateGame(r.Context(), models.NewGame{
		Date:      date,
		HomeID:    home,
		AwayID:    away,
		HomeScore: homeScore,
		AwayScore: awayScore,
	})
	if err != nil {
		s.writeError(w, r, err, "unable to create game")
		return
	}
	respond.JSON(w, r, http.StatusCreated, game)
}

func (s *Service) updateGameHandler(w http.ResponseWriter, r *http.Request, in *validation.Input) {
	id, _ := gameID(r)
	patch := models.GamePatch{
		Date:      in.TimePtr("date"),
		Home:      in.IntPtr("home"),
		Away:      in.IntPtr("away"),
		HomeScore: in.IntPtr("home_score"),
		AwayScore: in.IntPtr("away_score"),
	}

	game, err := s.app.UpdateGame(r.Context(), id, patch)
	if err != nil {
		s.writeError(w, r, err, "unable to update game")
		return
	}
	respond.JSON(w, r, http.StatusOK, game)
}

// DeleteGame removes a game by id
func (s *Service) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "game not found")
		return
	}

	if err := s.app.DeleteGame(r.Context(), id); err != nil {
		s.writeError(w, r, err, "unable to delete game")
		return
	}
	respond.NoContent(w)
}

// withID answers 404 before next runs when the path id is not a number.
func (s *Service) withID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := gameID(r); !ok {
			respond.Error(w, r, http.StatusNotFound, "game not found")
			return
		}
		next(w, r)
	}
}

func gameID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error, generic string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "game not found")
	case errors.Is(err, ErrSameTeam):
		respond.JSON(w, r, http.StatusBadRequest, map[string][]validation.FieldError{
			"errors": {{Type: "field", Msg: ErrSameTeam.Error(), Path: "home", Location: "body"}},
		})
	case errors.Is(err, store.ErrConflict):
		// a team was deleted between validation and the write
		respond.Error(w, r, http.StatusBadRequest, "game references an unknown team")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg(generic)
		respond.Error(w, r, http.StatusInternalServerError, generic)
	}
}
