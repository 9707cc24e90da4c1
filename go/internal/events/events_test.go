package events

import (
	"context"
	"errors"
	"testing"
)

type recordingPublisher struct {
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event Event) error {
	p.events = append(p.events, event)
	return p.err
}

func TestNotify(t *testing.T) {
	p := &recordingPublisher{}
	Notify(context.Background(), p, TeamCreated, map[string]string{"slug": "valur"})

	if len(p.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(p.events))
	}
	ev := p.events[0]
	if ev.Type != TeamCreated || ev.ID.String() == "" || ev.OccurredAt.IsZero() {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestNotifySwallowsPublishErrors(t *testing.T) {
	p := &recordingPublisher{err: errors.New("broker down")}
	Notify(context.Background(), p, GameDeleted, 1)

	if len(p.events) != 1 {
		t.Fatalf("expected publish attempt, got %d", len(p.events))
	}
	Notify(context.Background(), nil, GameDeleted, 1)
}

func TestSubject(t *testing.T) {
	cfg := DefaultJetStreamConfig()
	if got := cfg.Subject(GameUpdated); got != "scoreboard.events.game.updated" {
		t.Fatalf("unexpected subject %q", got)
	}
}

func TestNopPublisher(t *testing.T) {
	if err := (NopPublisher{}).Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
