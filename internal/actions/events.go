// Package actions holds the collaborators the recovery dispatcher fires into
// when running inside the daemon: navigation state, a webhook resender, and
// the event publishers they report to.
package actions

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event records one collaborator side effect.
type Event struct {
	ID        string
	Name      string
	MessageID string
	Fields    map[string]any
	At        time.Time
}

func newEvent(name, messageID string, fields map[string]any) Event {
	return Event{ID: uuid.NewString(), Name: name, MessageID: messageID, Fields: fields, At: time.Now()}
}

// EventPublisher receives events. Implementations should be lightweight and
// non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// LogPublisher writes events to a zerolog logger at info level.
type LogPublisher struct{ Log zerolog.Logger }

func (p LogPublisher) Publish(e Event) {
	z := p.Log.Info().Str("event_id", e.ID).Str("event", e.Name)
	if e.MessageID != "" {
		z = z.Str("message_id", e.MessageID)
	}
	if len(e.Fields) > 0 {
		z = z.Fields(e.Fields)
	}
	z.Msg("action event")
}

// Fanout publishes to every publisher in order.
type Fanout []EventPublisher

func (f Fanout) Publish(e Event) {
	for _, p := range f {
		p.Publish(e)
	}
}
