package games

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

// memRepo is an in-memory GamesRepository that also answers team id checks.
type memRepo struct {
	mu      sync.Mutex
	nextID  int
	teams   map[int]models.Team
	games   map[int]models.Game
	updates []store.Fields
	err     error
}

func newMemRepo(teams ...models.Team) *memRepo {
	r := &memRepo{teams: map[int]models.Team{}, games: map[int]models.Game{}}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *memRepo) CheckTeamExists(ctx context.Context, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.teams[id]
	return ok, nil
}

func (r *memRepo) GetGames(ctx context.Context) ([]models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Game{}
	for _, g := range r.games {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memRepo) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game %d: %w", id, store.ErrNotFound)
	}
	return &g, nil
}

func (r *memRepo) InsertGame(ctx context.Context, game models.NewGame) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	created := models.Game{
		ID:        r.nextID,
		Date:      game.Date,
		Home:      r.teams[game.HomeID],
		Away:      r.teams[game.AwayID],
		HomeScore: game.HomeScore,
		AwayScore: game.AwayScore,
		Created:   now,
		Updated:   now,
	}
	r.games[created.ID] = created
	return &created, nil
}

func (r *memRepo) UpdateGame(ctx context.Context, id int, fields store.Fields) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	fields = fields.Filter()
	if len(fields) == 0 {
		return nil, store.ErrNoFields
	}
	g, ok := r.games[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.updates = append(r.updates, fields)
	for _, f := range fields {
		switch f.Name {
		case "date":
			g.Date = f.Value.(time.Time)
		case "updated":
			g.Updated = f.Value.(time.Time)
		case "home":
			g.Home = r.teams[f.Value.(int)]
		case "away":
			g.Away = r.teams[f.Value.(int)]
		case "home_score":
			g.HomeScore = f.Value.(int)
		case "away_score":
			g.AwayScore = f.Value.(int)
		}
	}
	r.games[id] = g
	return &g, nil
}

func (r *memRepo) DeleteGameByID(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.games[id]; !ok {
		return fmt.Errorf("delete game: %w", store.ErrNotFound)
	}
	delete(r.games, id)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func intPtr(n int) *int { return &n }

var (
	teamFram = models.Team{ID: 1, Name: "Fram", Slug: "fram"}
	teamKR   = models.Team{ID: 2, Name: "KR", Slug: "kr"}
	teamKA   = models.Team{ID: 3, Name: "KA", Slug: "ka"}
)
