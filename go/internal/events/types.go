package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event types published after successful mutations
const (
	TeamCreated = "team.created"
	TeamUpdated = "team.updated"
	TeamDeleted = "team.deleted"
	GameCreated = "game.created"
	GameUpdated = "game.updated"
	GameDeleted = "game.deleted"
)

// Event is a change notification for a team or a game
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher is an interface that defines our publisher.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }

// Notify publishes a new event of type typ. Failures are logged and never
// returned; a change that was stored must not be reported as failed.
func Notify(ctx context.Context, p Publisher, typ string, payload any) {
	if p == nil {
		return
	}

	event := Event{
		ID:         uuid.New(),
		Type:       typ,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
	if err := p.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("event_type", typ).
			Str("event_id", event.ID.String()).
			Msg("failed to publish event")
	}
}
