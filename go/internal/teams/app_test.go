package teams

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mcdev12/scoreboard/go/internal/events"
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/store"
)

func TestCreateTeamDerivesSlug(t *testing.T) {
	repo := newMemRepo()
	pub := &recordingPublisher{}
	app := NewApp(repo, pub)

	team, err := app.CreateTeam(context.Background(), "Víkingur Reykjavík", strPtr("Knattspyrnufélagið"))
	if err != nil {
		t.Fatalf("CreateTeam() error = %v", err)
	}
	if team.Slug != "vikingur-reykjavik" {
		t.Errorf("slug = %q, want vikingur-reykjavik", team.Slug)
	}
	if team.Description == nil || *team.Description != "Knattspyrnufélagið" {
		t.Errorf("description = %v", team.Description)
	}
	if got := pub.types(); !reflect.DeepEqual(got, []string{events.TeamCreated}) {
		t.Errorf("events = %v", got)
	}
}

func TestCreateTeamConflict(t *testing.T) {
	repo := newMemRepo(models.Team{ID: 1, Name: "Valur", Slug: "valur"})
	app := NewApp(repo, nil)

	_, err := app.CreateTeam(context.Background(), "VALUR", nil)
	if !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("CreateTeam() error = %v, want ErrSlugTaken", err)
	}
}

func TestUpdateTeam(t *testing.T) {
	tests := []struct {
		name     string
		slug     string
		patch    models.TeamPatch
		wantSlug string
		wantName string
		wantDesc *string
		wantErr  error
	}{
		{
			name:     "rename changes slug",
			slug:     "fram",
			patch:    models.TeamPatch{Name: strPtr("Fram Reykjavík")},
			wantSlug: "fram-reykjavik",
			wantName: "Fram Reykjavík",
		},
		{
			name:     "same slug keeps slug",
			slug:     "fram",
			patch:    models.TeamPatch{Name: strPtr("FRAM")},
			wantSlug: "fram",
			wantName: "FRAM",
		},
		{
			name:     "description only",
			slug:     "fram",
			patch:    models.TeamPatch{Description: strPtr("blue")},
			wantSlug: "fram",
			wantName: "Fram",
			wantDesc: strPtr("blue"),
		},
		{
			name:     "empty patch returns existing",
			slug:     "fram",
			patch:    models.TeamPatch{},
			wantSlug: "fram",
			wantName: "Fram",
		},
		{
			name:    "slug owned by another team",
			slug:    "fram",
			patch:   models.TeamPatch{Name: strPtr("KR")},
			wantErr: ErrSlugTaken,
		},
		{
			name:    "unknown team",
			slug:    "nope",
			patch:   models.TeamPatch{Name: strPtr("Nope")},
			wantErr: store.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo(
				models.Team{ID: 1, Name: "Fram", Slug: "fram"},
				models.Team{ID: 2, Name: "KR", Slug: "kr"},
			)
			app := NewApp(repo, nil)

			team, err := app.UpdateTeam(context.Background(), tt.slug, tt.patch)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateTeam() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateTeam() error = %v", err)
			}
			if team.Slug != tt.wantSlug || team.Name != tt.wantName {
				t.Errorf("team = %+v, want name %q slug %q", team, tt.wantName, tt.wantSlug)
			}
			if !reflect.DeepEqual(team.Description, tt.wantDesc) {
				t.Errorf("description = %v, want %v", team.Description, tt.wantDesc)
			}
		})
	}
}

func TestDeleteTeam(t *testing.T) {
	t.Run("deletes unreferenced team", func(t *testing.T) {
		repo := newMemRepo(models.Team{ID: 1, Name: "Fram", Slug: "fram"})
		pub := &recordingPublisher{}
		app := NewApp(repo, pub)

		if err := app.DeleteTeam(context.Background(), "fram"); err != nil {
			t.Fatalf("DeleteTeam() error = %v", err)
		}
		if _, err := app.GetTeam(context.Background(), "fram"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("GetTeam() after delete error = %v, want ErrNotFound", err)
		}
		if got := pub.types(); !reflect.DeepEqual(got, []string{events.TeamDeleted}) {
			t.Errorf("events = %v", got)
		}
	})

	t.Run("refuses team with games", func(t *testing.T) {
		repo := newMemRepo(models.Team{ID: 1, Name: "Fram", Slug: "fram"})
		repo.games[1] = 3
		app := NewApp(repo, nil)

		if err := app.DeleteTeam(context.Background(), "fram"); !errors.Is(err, ErrTeamInUse) {
			t.Fatalf("DeleteTeam() error = %v, want ErrTeamInUse", err)
		}
		if _, err := app.GetTeam(context.Background(), "fram"); err != nil {
			t.Errorf("team should survive, GetTeam() error = %v", err)
		}
	})

	t.Run("unknown team", func(t *testing.T) {
		app := NewApp(newMemRepo(), nil)
		if err := app.DeleteTeam(context.Background(), "fram"); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("DeleteTeam() error = %v, want ErrNotFound", err)
		}
	})
}

func TestListTeamsStoreFailure(t *testing.T) {
	repo := newMemRepo()
	repo.err = &store.Error{Op: "list teams", Kind: store.ErrStore, Err: errors.New("connection refused")}
	app := NewApp(repo, nil)

	if _, err := app.ListTeams(context.Background()); !errors.Is(err, store.ErrStore) {
		t.Fatalf("ListTeams() error = %v, want ErrStore", err)
	}
}
