package messaging

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-rpg/internal/game"
)

// EventSubjectPrefix is the root of every world event subject. Events for one
// actor go to <prefix>.<actor id>.
const EventSubjectPrefix = "rpg.events"

func EventSubject(actorId string) string {
	return fmt.Sprintf("%s.%s", EventSubjectPrefix, actorId)
}

// Bus is the part of NatsServer the publisher needs.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// NatsPublisher publishes world events as JSON and streams them back to
// consoles.
type NatsPublisher struct {
	bus Bus
}

// NewNatsPublisher wraps a bus for world event delivery.
func NewNatsPublisher(bus Bus) *NatsPublisher {
	return &NatsPublisher{bus: bus}
}

// PublishEvent satisfies game.EventPublisher.
func (p *NatsPublisher) PublishEvent(ev game.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}
	return p.bus.Publish(EventSubject(ev.ActorId), data)
}

// SubscribeEvents calls handler for every world event. Malformed messages are
// logged and dropped.
func (p *NatsPublisher) SubscribeEvents(handler func(game.Event)) (func(), error) {
	return p.bus.Subscribe(EventSubjectPrefix+".>", func(data []byte) {
		var ev game.Event
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("dropping malformed event", "error", err)
			return
		}
		handler(ev)
	})
}
