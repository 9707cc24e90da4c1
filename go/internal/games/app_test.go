package games

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func seededApp(t *testing.T, clock clockwork.Clock) (*App, *memRepo, *recordingPublisher) {
	t.Helper()
	repo := newMemRepo(teamFram, teamKR, teamKA)
	pub := &recordingPublisher{}
	app := NewApp(repo, pub, clock)

	if _, err := app.CreateGame(context.Background(), models.NewGame{
		Date:      now.AddDate(0, 0, -3),
		HomeID:    teamFram.ID,
		AwayID:    teamKR.ID,
		HomeScore: 2,
		AwayScore: 1,
	}); err != nil {
		t.Fatalf("CreateGame() error = %v", err)
	}
	return app, repo, pub
}

func TestCreateGame(t *testing.T) {
	app, _, pub := seededApp(t, clockwork.NewFakeClockAt(now))

	game, err := app.GetGame(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetGame() error = %v", err)
	}
	if game.Home.Slug != "fram" || game.Away.Slug != "kr" || game.HomeScore != 2 {
		t.Errorf("game = %+v", game)
	}
	if got := pub.types(); !reflect.DeepEqual(got, []string{events.GameCreated}) {
		t.Errorf("events = %v", got)
	}

	_, err = app.CreateGame(context.Background(), models.NewGame{Date: now, HomeID: 1, AwayID: 1})
	if !errors.Is(err, ErrSameTeam) {
		t.Errorf("CreateGame() same team error = %v, want ErrSameTeam", err)
	}
}

func TestUpdateGame(t *testing.T) {
	tests := []struct {
		name       string
		id         int
		patch      models.GamePatch
		wantErr    error
		wantFields []string
		check      func(t *testing.T, g *models.Game)
	}{
		{
			name:       "score only",
			id:         1,
			patch:      models.GamePatch{HomeScore: intPtr(5)},
			wantFields: []string{"home_score", "updated"},
			check: func(t *testing.T, g *models.Game) {
				if g.HomeScore != 5 || g.AwayScore != 1 {
					t.Errorf("scores = %d-%d, want 5-1", g.HomeScore, g.AwayScore)
				}
			},
		},
		{
			name:       "swap in a new away team",
			id:         1,
			patch:      models.GamePatch{Away: intPtr(teamKA.ID)},
			wantFields: []string{"away", "updated"},
			check: func(t *testing.T, g *models.Game) {
				if g.Away.Slug != "ka" {
					t.Errorf("away = %q, want ka", g.Away.Slug)
				}
			},
		},
		{
			name:    "away equals stored home",
			id:      1,
			patch:   models.GamePatch{Away: intPtr(teamFram.ID)},
			wantErr: ErrSameTeam,
		},
		{
			name:    "home equals stored away",
			id:      1,
			patch:   models.GamePatch{Home: intPtr(teamKR.ID)},
			wantErr: ErrSameTeam,
		},
		{
			name:       "swap both sides",
			id:         1,
			patch:      models.GamePatch{Home: intPtr(teamKR.ID), Away: intPtr(teamFram.ID)},
			wantFields: []string{"home", "away", "updated"},
		},
		{
			name:    "unknown game",
			id:      42,
			patch:   models.GamePatch{HomeScore: intPtr(1)},
			wantErr: store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClockAt(now)
			app, repo, _ := seededApp(t, clock)
			clock.Advance(time.Hour)

			game, err := app.UpdateGame(context.Background(), tt.id, tt.patch)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateGame() error = %v, want %v", err, tt.wantErr)
				}
				if len(repo.updates) != 0 {
					t.Errorf("store was written: %v", repo.updates)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateGame() error = %v", err)
			}
			if len(repo.updates) != 1 {
				t.Fatalf("updates = %d, want 1", len(repo.updates))
			}
			if got := repo.updates[0].Names(); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
			if !game.Updated.Equal(now.Add(time.Hour)) {
				t.Errorf("updated = %v, want %v", game.Updated, now.Add(time.Hour))
			}
			if tt.check != nil {
				tt.check(t, game)
			}
		})
	}
}

func TestDeleteGame(t *testing.T) {
	app, _, pub := seededApp(t, clockwork.NewFakeClockAt(now))

	if err := app.DeleteGame(context.Background(), 1); err != nil {
		t.Fatalf("DeleteGame() error = %v", err)
	}
	if err := app.DeleteGame(context.Background(), 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second DeleteGame() error = %v, want ErrNotFound", err)
	}
	if got := pub.types(); !reflect.DeepEqual(got, []string{events.GameCreated, events.GameDeleted}) {
		t.Errorf("events = %v", got)
	}
}
