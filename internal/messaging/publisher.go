package messaging

import (
	"log/slog"

	"github.com/pixil98/go-fishery/internal/events"
)

// EventPublisher delivers session events to the owning player's subject.
type EventPublisher struct {
	pub events.Publisher
}

// NewEventPublisher wraps pub so it can be handed to sessions as a sink.
func NewEventPublisher(pub events.Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

// Emit never blocks the session on delivery problems; failures are logged
// and the event is dropped.
func (p *EventPublisher) Emit(e events.Event) {
	data, err := e.Marshal()
	if err != nil {
		slog.Error("encoding event", "kind", e.Kind, "session", e.SessionId, "error", err)
		return
	}
	if err := p.pub.Publish(events.Subject(e.SessionId), data); err != nil {
		slog.Warn("publishing event", "kind", e.Kind, "session", e.SessionId, "error", err)
	}
}
