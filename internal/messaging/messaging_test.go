package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-testutil"
)

// mockBus implements Bus for testing
type mockBus struct {
	subject  string
	data     []byte
	handlers map[string]func([]byte)
}

func (b *mockBus) Publish(subject string, data []byte) error {
	b.subject = subject
	b.data = data
	return nil
}

func (b *mockBus) Subscribe(subject string, handler func([]byte)) (func(), error) {
	if b.handlers == nil {
		b.handlers = map[string]func([]byte){}
	}
	b.handlers[subject] = handler
	return func() { delete(b.handlers, subject) }, nil
}

func TestNatsPublisher_PublishEvent(t *testing.T) {
	bus := &mockBus{}
	p := NewNatsPublisher(bus)

	err := p.PublishEvent(game.Event{Kind: game.EventDeath, ActorId: "abc", Actor: "the goblin"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "subject", bus.subject, "rpg.events.abc")
	testutil.AssertEqual(t, "data", string(bus.data), `{"kind":"death","actor_id":"abc","actor":"the goblin"}`)
}

func TestNatsPublisher_SubscribeEvents(t *testing.T) {
	bus := &mockBus{}
	p := NewNatsPublisher(bus)

	var got []game.Event
	unsub, err := p.SubscribeEvents(func(ev game.Event) { got = append(got, ev) })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	handler, ok := bus.handlers["rpg.events.>"]
	if !ok {
		t.Fatalf("expected a wildcard subscription")
	}
	handler([]byte(`{"kind":"attack","actor":"the goblin","damage":4}`))
	handler([]byte(`not json`))

	testutil.AssertEqual(t, "events", len(got), 1)
	testutil.AssertEqual(t, "kind", got[0].Kind, game.EventAttack)
	testutil.AssertEqual(t, "damage", got[0].Damage, 4.0)

	unsub()
	testutil.AssertEqual(t, "subscriptions", len(bus.handlers), 0)
}

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(RandomPort))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Publish("x", nil); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	if _, err := s.Subscribe("x", func([]byte) {}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestNatsServer_RoundTrip(t *testing.T) {
	s, err := NewNatsServer(WithPort(RandomPort), WithStartTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("unexpected error stopping server: %v", err)
		}
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server stopped early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server not ready")
	}

	p := NewNatsPublisher(s)
	received := make(chan game.Event, 1)
	unsub, err := p.SubscribeEvents(func(ev game.Event) { received <- ev })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	if err := p.PublishEvent(game.Event{Kind: game.EventAssault, ActorId: "guard-1", Message: "The guard shouts!"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case ev := <-received:
		testutil.AssertEqual(t, "message", ev.Message, "The guard shouts!")
		testutil.AssertEqual(t, "actor id", ev.ActorId, "guard-1")
	case <-time.After(5 * time.Second):
		t.Fatalf("event not delivered")
	}
}
