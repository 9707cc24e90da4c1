package models

// Team represents a team that plays games in the system
type Team struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
}

// NewTeam holds the data needed to insert a team. Slug is derived from Name
// by the caller before insertion.
type NewTeam struct {
	Name        string
	Slug        string
	Description *string
}

// TeamPatch is a partial team update. Nil fields are left untouched.
type TeamPatch struct {
	Name        *string
	Description *string
}
