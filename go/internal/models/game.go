package models

import "time"

// MaxScore is the highest score a team can register for a single game.
const MaxScore = 99

// Game is a played game between two teams
type Game struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	Home      Team      `json:"home"`
	Away      Team      `json:"away"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Created   time.Time `json:"created"`
	Updated   time.Time `json:"updated"`
}

// GameQuery is the flattened projection returned by the games/teams join
// before it is remapped into the nested Game shape.
type GameQuery struct {
	ID              int       `json:"id"`
	Date            time.Time `json:"date"`
	HomeID          int       `json:"home_id"`
	HomeName        string    `json:"home_name"`
	HomeSlug        string    `json:"home_slug"`
	HomeDescription *string   `json:"home_description,omitempty"`
	AwayID          int       `json:"away_id"`
	AwayName        string    `json:"away_name"`
	AwaySlug        string    `json:"away_slug"`
	AwayDescription *string   `json:"away_description,omitempty"`
	HomeScore       int       `json:"home_score"`
	AwayScore       int       `json:"away_score"`
	Created         time.Time `json:"created"`
	Updated         time.Time `json:"updated"`
}

// Game converts the flat projection into a Game with nested teams.
func (q GameQuery) Game() Game {
	return Game{
		ID:   q.ID,
		Date: q.Date,
		Home: Team{
			ID:          q.HomeID,
			Name:        q.HomeName,
			Slug:        q.HomeSlug,
			Description: q.HomeDescription,
		},
		Away: Team{
			ID:          q.AwayID,
			Name:        q.AwayName,
			Slug:        q.AwaySlug,
			Description: q.AwayDescription,
		},
		HomeScore: q.HomeScore,
		AwayScore: q.AwayScore,
		Created:   q.Created,
		Updated:   q.Updated,
	}
}

// NewGame holds the data needed to insert a game
type NewGame struct {
	Date      time.Time
	HomeID    int
	AwayID    int
	HomeScore int
	AwayScore int
}

// GamePatch is a partial game update. Nil fields are left untouched.
type GamePatch struct {
	Date      *time.Time
	Home      *int
	Away      *int
	HomeScore *int
	AwayScore *int
}
