package teams

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

// memRepo is an in-memory TeamsRepository.
type memRepo struct {
	mu     sync.Mutex
	nextID int
	teams  map[int]models.Team
	games  map[int]int
	err    error
}

func newMemRepo(teams ...models.Team) *memRepo {
	r := &memRepo{teams: map[int]models.Team{}, games: map[int]int{}}
	for _, t := range teams {
		r.teams[t.ID] = t
		if t.ID > r.nextID {
			r.nextID = t.ID
		}
	}
	return r
}

func (r *memRepo) GetTeams(ctx context.Context) ([]models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []models.Team{}
	for _, t := range r.teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepo) GetTeamBySlug(ctx context.Context, slug string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, t := range r.teams {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("team %s: %w", slug, store.ErrNotFound)
}

func (r *memRepo) InsertTeam(ctx context.Context, team models.NewTeam) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, t := range r.teams {
		if t.Slug == team.Slug {
			return nil, &store.Error{Op: "insert team", Kind: store.ErrConflict, Constraint: "teams_slug_key"}
		}
	}
	r.nextID++
	created := models.Team{ID: r.nextID, Name: team.Name, Slug: team.Slug, Description: team.Description}
	r.teams[created.ID] = created
	return &created, nil
}

func (r *memRepo) UpdateTeam(ctx context.Context, id int, fields store.Fields) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	fields = fields.Filter()
	if len(fields) == 0 {
		return nil, store.ErrNoFields
	}
	t, ok := r.teams[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for _, f := range fields {
		switch f.Name {
		case "name":
			t.Name = f.Value.(string)
		case "slug":
			t.Slug = f.Value.(string)
		case "description":
			d := f.Value.(string)
			t.Description = &d
		}
	}
	r.teams[id] = t
	return &t, nil
}

func (r *memRepo) DeleteTeamBySlug(ctx context.Context, slug string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for id, t := range r.teams {
		if t.Slug == slug {
			delete(r.teams, id)
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *memRepo) CountGamesForTeam(ctx context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	return r.games[id], nil
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

func strPtr(s string) *string { return &s }
