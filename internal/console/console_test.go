package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-testutil"
)

// mockWorld implements World for testing
type mockWorld struct {
	player  game.ActorInfo
	npcs    []game.ActorInfo
	moved   *core.Vec3
	stopped bool
	err     error
}

func (w *mockWorld) Player() game.ActorInfo { return w.player }

func (w *mockWorld) Actors() []game.ActorInfo {
	return append([]game.ActorInfo{w.player}, w.npcs...)
}

func (w *mockWorld) FindByName(name string) (game.ActorInfo, error) {
	for _, a := range w.npcs {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return game.ActorInfo{}, game.ErrActorNotFound
}

func (w *mockWorld) PlayerAttack(name string) (game.ActorInfo, error) {
	if w.err != nil {
		return game.ActorInfo{}, w.err
	}
	return w.FindByName(name)
}

func (w *mockWorld) PlayerMove(dest core.Vec3) error {
	if w.err != nil {
		return w.err
	}
	w.moved = &dest
	return nil
}

func (w *mockWorld) PlayerStop() error {
	if w.err != nil {
		return w.err
	}
	w.stopped = true
	return nil
}

func newMockWorld() *mockWorld {
	return &mockWorld{
		player: game.ActorInfo{
			Id:        uuid.New(),
			Name:      "rook",
			Side:      game.SidePlayer,
			Points:    7,
			MaxPoints: 10,
			Alive:     true,
			Position:  core.Vec3{Y: 1},
		},
		npcs: []game.ActorInfo{
			{
				Id:        uuid.New(),
				Name:      "goblin",
				Points:    4,
				MaxPoints: 8,
				Alive:     true,
				State:     ai.StatePatrolling,
				Position:  core.Vec3{X: 3, Y: 1, Z: 4},
				Route:     &ai.Route{Waypoints: []core.Vec3{{X: 1}, {X: 2}}},
				Waypoint:  1,
			},
			{
				Id:       uuid.New(),
				Name:     "rat",
				Position: core.Vec3{X: 1},
			},
		},
	}
}

func TestHandler_Exec(t *testing.T) {
	boom := errors.New("boom")

	tests := map[string]struct {
		line      string
		worldErr  error
		expOutput []string
		expErr    string
		expUser   bool
		expQuit   bool
	}{
		"blank": {
			line: "   ",
		},
		"unknown": {
			line:    "dance",
			expErr:  "Unknown command: dance",
			expUser: true,
		},
		"ambiguous prefix": {
			line:    "s",
			expErr:  "Unknown command: s",
			expUser: true,
		},
		"look": {
			line:      "look",
			expOutput: []string{"Goblin (4/8) is patrolling, 5.0 away.", "Rat lies dead at (1.0, 0.0, 0.0)."},
		},
		"status": {
			line:      "STATUS",
			expOutput: []string{"rook", "Health: 7/10", "Position: (0.0, 1.0, 0.0)", "Standing still."},
		},
		"attack": {
			line:      "attack Goblin",
			expOutput: []string{"You attack goblin!"},
		},
		"attack prefix": {
			line:      "att goblin",
			expOutput: []string{"You attack goblin!"},
		},
		"attack nobody": {
			line:    "attack",
			expErr:  "Attack whom?",
			expUser: true,
		},
		"attack missing": {
			line:    "attack dragon",
			expErr:  "You don't see dragon here.",
			expUser: true,
		},
		"attack while dead": {
			line:     "attack goblin",
			worldErr: game.ErrPlayerDead,
			expErr:   "You are dead.",
			expUser:  true,
		},
		"attack corpse": {
			line:     "attack rat",
			worldErr: fmt.Errorf("rat: %w", game.ErrTargetDead),
			expErr:   "rat is already dead.",
			expUser:  true,
		},
		"move": {
			line:      "move 2 -3.5",
			expOutput: []string{"You head for (2.0, 1.0, -3.5)."},
		},
		"move bad args": {
			line:    "move 2",
			expErr:  "Usage: move <x> <z>",
			expUser: true,
		},
		"move not numbers": {
			line:    "move north east",
			expErr:  "Coordinates must be numbers.",
			expUser: true,
		},
		"move not finite": {
			line:    "move NaN 0",
			expErr:  "Coordinates must be numbers.",
			expUser: true,
		},
		"move infinite": {
			line:    "move 1 -Inf",
			expErr:  "Coordinates must be numbers.",
			expUser: true,
		},
		"move refused": {
			line:     "move 1 2",
			worldErr: fmt.Errorf("moving: %w", game.ErrBadPosition),
			expErr:   "You can't go there.",
			expUser:  true,
		},
		"stop": {
			line:      "stop",
			expOutput: []string{"You stop."},
		},
		"stop fails": {
			line:     "stop",
			worldErr: boom,
			expErr:   "boom",
		},
		"route": {
			line:      "route goblin",
			expOutput: []string{"goblin patrols:", "1. (1.0, 0.0, 0.0)", "* 2. (2.0, 0.0, 0.0)"},
		},
		"no route": {
			line:      "route rat",
			expOutput: []string{"rat has no route."},
		},
		"help": {
			line:      "help",
			expOutput: []string{"attack <name>", "move <x> <z>", "quit"},
		},
		"quit": {
			line:      "quit",
			expOutput: []string{"Goodbye."},
			expQuit:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newMockWorld()
			w.err = tt.worldErr
			var out bytes.Buffer
			s := NewSession(&out)

			err := NewHandler(w).Exec(context.Background(), s, tt.line)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				var userErr *UserError
				testutil.AssertEqual(t, "user error", errors.As(err, &userErr), tt.expUser)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, exp := range tt.expOutput {
				if !strings.Contains(out.String(), exp) {
					t.Errorf("output %q does not contain %q", out.String(), exp)
				}
			}
			testutil.AssertEqual(t, "quit", s.Quit, tt.expQuit)
		})
	}
}

type staticRoster []string

func (r staticRoster) Active() []string { return r }

func TestHandler_Who(t *testing.T) {
	tests := map[string]struct {
		roster Roster
		exp    []string
	}{
		"no roster": {
			exp: []string{"Connected (1):", "rook@127.0.0.1:4000 (telnet) (you)"},
		},
		"everyone": {
			roster: staticRoster{"ada@10.0.0.2:22 (ssh)", "rook@127.0.0.1:4000 (telnet)"},
			exp:    []string{"Connected (2):", "ada@10.0.0.2:22 (ssh)\n", "rook@127.0.0.1:4000 (telnet) (you)"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			h := NewHandler(newMockWorld())
			h.SetRoster(tt.roster)

			var out bytes.Buffer
			s := NewSession(&out)
			s.Operator = "rook@127.0.0.1:4000 (telnet)"

			if err := h.Exec(context.Background(), s, "who"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, exp := range tt.exp {
				if !strings.Contains(out.String(), exp) {
					t.Errorf("output %q does not contain %q", out.String(), exp)
				}
			}
		})
	}
}

func TestHandler_MoveKeepsHeight(t *testing.T) {
	w := newMockWorld()
	s := NewSession(&bytes.Buffer{})

	if err := NewHandler(w).Exec(context.Background(), s, "move 5 6"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.moved == nil {
		t.Fatalf("expected the player to move")
	}
	testutil.AssertEqual(t, "dest", *w.moved, core.Vec3{X: 5, Y: 1, Z: 6})
}

// fakeEvents delivers its events as soon as a session subscribes
type fakeEvents struct {
	events       []game.Event
	unsubscribed bool
}

func (f *fakeEvents) SubscribeEvents(h func(game.Event)) (func(), error) {
	for _, ev := range f.events {
		h(ev)
	}
	return func() { f.unsubscribed = true }, nil
}

type conn struct {
	io.Reader
	io.Writer
}

func TestConsole_RunSession(t *testing.T) {
	events := &fakeEvents{events: []game.Event{
		{Kind: game.EventDeath, Message: "The goblin collapses."},
		{Kind: game.EventState, From: "patrolling", To: "dead"},
	}}
	c := NewConsole(NewHandler(newMockWorld()), events)

	var out bytes.Buffer
	err := c.RunSession(context.Background(), conn{strings.NewReader("dance\nstop\nquit\nlook\n"), &out}, "rook@10.0.0.7:5122 (ssh)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, exp := range []string{"Welcome, rook@10.0.0.7:5122 (ssh).", "You are Rook.", "The goblin collapses.", "Unknown command: dance", "You stop.", "Goodbye."} {
		if !strings.Contains(got, exp) {
			t.Errorf("output %q does not contain %q", got, exp)
		}
	}
	if strings.Contains(got, "Goblin") || strings.Contains(got, "dead") {
		t.Errorf("unexpected output %q", got)
	}
	testutil.AssertEqual(t, "unsubscribed", events.unsubscribed, true)
}

func TestConsole_RunSessionEndsAtEOF(t *testing.T) {
	c := NewConsole(NewHandler(newMockWorld()), nil)

	var out bytes.Buffer
	if err := c.RunSession(context.Background(), conn{strings.NewReader("stop\n"), &out}, "guest"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "You stop.") {
		t.Errorf("expected stop output, got %q", out.String())
	}
}

func TestSession_Writeln(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out)

	if err := s.Writeln("The goblin collapses.\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Prompt("> "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "output", out.String(), "The goblin collapses.\n> ")
}
