package store

import (
	"github.com/mcdev12/scoreboard/go/internal/models"
	"github.com/mcdev12/scoreboard/go/internal/sqlutil"
)

// Row mappers never trust the schema: a row missing an identifying column is
// treated as absent and dropped, not reported as a failure.

// TeamMapper converts a teams row. It returns nil when id, name or slug is
// missing or zero.
func TeamMapper(row map[string]any) *models.Team {
	if row == nil {
		return nil
	}

	id, ok := sqlutil.AsInt(row["id"])
	if !ok || id == 0 {
		return nil
	}
	name, ok := sqlutil.AsString(row["name"])
	if !ok || name == "" {
		return nil
	}
	slug, ok := sqlutil.AsString(row["slug"])
	if !ok || slug == "" {
		return nil
	}

	return &models.Team{
		ID:          id,
		Name:        name,
		Slug:        slug,
		Description: sqlutil.AsStringPtr(row["description"]),
	}
}

// TeamsMapper maps every row and silently drops the malformed ones.
func TeamsMapper(rows []map[string]any) []models.Team {
	teams := make([]models.Team, 0, len(rows))
	for _, row := range rows {
		if team := TeamMapper(row); team != nil {
			teams = append(teams, *team)
		}
	}
	return teams
}

// GameQueryMapper converts a flattened games/teams join row. It returns nil
// when id, date, home_id or away_id is missing.
func GameQueryMapper(row map[string]any) *models.GameQuery {
	if row == nil {
		return nil
	}

	id, ok := sqlutil.AsInt(row["id"])
	if !ok || id == 0 {
		return nil
	}
	date, ok := sqlutil.AsTime(row["date"])
	if !ok {
		return nil
	}
	homeID, ok := sqlutil.AsInt(row["home_id"])
	if !ok || homeID == 0 {
		return nil
	}
	awayID, ok := sqlutil.AsInt(row["away_id"])
	if !ok || awayID == 0 {
		return nil
	}

	q := &models.GameQuery{
		ID:              id,
		Date:            date,
		HomeID:          homeID,
		HomeDescription: sqlutil.AsStringPtr(row["home_description"]),
		AwayID:          awayID,
		AwayDescription: sqlutil.AsStringPtr(row["away_description"]),
	}
	q.HomeName, _ = sqlutil.AsString(row["home_name"])
	q.HomeSlug, _ = sqlutil.AsString(row["home_slug"])
	q.AwayName, _ = sqlutil.AsString(row["away_name"])
	q.AwaySlug, _ = sqlutil.AsString(row["away_slug"])
	q.HomeScore, _ = sqlutil.AsInt(row["home_score"])
	q.AwayScore, _ = sqlutil.AsInt(row["away_score"])
	q.Created, _ = sqlutil.AsTime(row["created"])
	q.Updated, _ = sqlutil.AsTime(row["updated"])
	return q
}

// GameMapper converts a join row into a Game with nested home and away teams.
func GameMapper(row map[string]any) *models.Game {
	q := GameQueryMapper(row)
	if q == nil {
		return nil
	}
	game := q.Game()
	return &game
}

// GamesMapper maps every row and silently drops the malformed ones.
func GamesMapper(rows []map[string]any) []models.Game {
	games := make([]models.Game, 0, len(rows))
	for _, row := range rows {
		if game := GameMapper(row); game != nil {
			games = append(games, *game)
		}
	}
	return games
}
