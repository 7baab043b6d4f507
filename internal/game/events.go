package game

// EventKind names what happened to an actor.
type EventKind string

const (
	EventAssault EventKind = "assault"
	EventDeath   EventKind = "death"
	EventAttack  EventKind = "attack"
	EventState   EventKind = "state"
	EventSpawn   EventKind = "spawn"
)

// Event is published whenever an actor's health, combat or behavior changes.
// Message is the rendered text consoles print.
type Event struct {
	Kind     EventKind `json:"kind"`
	ActorId  string    `json:"actor_id"`
	Actor    string    `json:"actor"`
	TargetId string    `json:"target_id,omitempty"`
	Target   string    `json:"target,omitempty"`
	Damage   float64   `json:"damage,omitempty"`
	From     string    `json:"from,omitempty"`
	To       string    `json:"to,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// EventPublisher delivers world events to whoever is listening.
type EventPublisher interface {
	PublishEvent(ev Event) error
}

// messageData is what archetype message templates see.
type messageData struct {
	Actor  string
	Target string
	Verb   string
	Damage float64
}
