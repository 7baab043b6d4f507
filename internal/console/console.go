package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/pixil98/go-rpg/internal/display"
	"github.com/pixil98/go-rpg/internal/game"
)

const prompt = "> "

// EventSource streams world events to a session.
type EventSource interface {
	SubscribeEvents(handler func(game.Event)) (func(), error)
}

// Console runs operator sessions against the world.
type Console struct {
	handler *Handler
	events  EventSource
}

// NewConsole creates a console. events may be nil, in which case sessions
// only see command output.
func NewConsole(h *Handler, events EventSource) *Console {
	return &Console{
		handler: h,
		events:  events,
	}
}

// RunSession reads commands from rw until the operator quits, the
// connection closes or ctx is cancelled. operator names the session in
// the who list.
func (c *Console) RunSession(ctx context.Context, rw io.ReadWriter, operator string) error {
	s := NewSession(rw)
	s.Operator = operator

	player := c.handler.world.Player()
	banner := fmt.Sprintf("Welcome, %s. You are %s. Type 'help' for commands.", operator, display.Title(player.Name))
	if err := s.Writeln(banner); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}

	if c.events != nil {
		unsub, err := c.events.SubscribeEvents(func(ev game.Event) {
			if ev.Message == "" {
				return
			}
			if err := s.Writeln(ev.Message); err != nil {
				slog.DebugContext(ctx, "writing event", "operator", s.Operator, "error", err)
			}
		})
		if err != nil {
			return fmt.Errorf("subscribing to events: %w", err)
		}
		defer unsub()
	}

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(rw)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for !s.Quit {
		if err := s.Prompt(prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if err := c.exec(ctx, s, line); err != nil {
				return err
			}
		}
	}

	return nil
}

func (c *Console) exec(ctx context.Context, s *Session, line string) error {
	err := c.handler.Exec(ctx, s, line)
	if err == nil {
		return nil
	}

	var userErr *UserError
	if errors.As(err, &userErr) {
		return s.Writeln(userErr.Message)
	}

	slog.ErrorContext(ctx, "executing command", "operator", s.Operator, "line", line, "error", err)
	return s.Writeln("Something went wrong.")
}
