package pubsub

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/classmeta/internal/typeregistry"
)

// ClassEvent is published once per class registration.
type ClassEvent struct {
	ID           string                  `json:"id"`
	RegisteredAt time.Time               `json:"registered_at"`
	Class        typeregistry.Descriptor `json:"class"`
}

// EventListener is a registry listener that publishes every registration it
// observes as a ClassEvent.
type EventListener struct {
	registry  *typeregistry.Registry
	publisher Publisher
	event     Event[ClassEvent]
	logger    *slog.Logger
}

// NewEventListener creates a listener publishing to topic. Attach it with
// Registry.AddListener; classes registered earlier are published during
// the replay.
func NewEventListener(reg *typeregistry.Registry, pub Publisher, topic string, logger *slog.Logger) *EventListener {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventListener{
		registry:  reg,
		publisher: pub,
		event:     NewEvent[ClassEvent](topic),
		logger:    logger,
	}
}

// Event returns the typed event the listener publishes.
func (l *EventListener) Event() Event[ClassEvent] {
	return l.event
}

// OnRegister implements typeregistry.Listener. Publishing failures are
// logged; they never fail the registration.
func (l *EventListener) OnRegister(c *typeregistry.Class) {
	desc, err := l.registry.Describe(c)
	if err != nil {
		// Reclaimed between registration and delivery.
		l.logger.Warn("Skipping event for class without metadata", "class", c.Name(), "error", err)
		return
	}

	evt := ClassEvent{
		ID:           uuid.NewString(),
		RegisteredAt: time.Now().UTC(),
		Class:        desc,
	}
	metadata := map[string]string{"alias": desc.Alias, "class": desc.Class}
	if err := Publish(context.Background(), l.publisher, l.event, evt, metadata); err != nil {
		l.logger.Error("Failed to publish class event", "class", c.Name(), "topic", l.event.Name(), "error", err)
		return
	}
	l.logger.Debug("Published class event", "class", c.Name(), "event_id", evt.ID)
}
