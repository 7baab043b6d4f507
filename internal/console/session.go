package console

import (
	"io"
	"strings"
	"sync"

	"github.com/pixil98/go-rpg/internal/display"
)

// Session is one connected operator. Command output and world events are
// written to it from different goroutines.
type Session struct {
	mu sync.Mutex
	w  io.Writer

	Operator string
	Quit     bool
}

func NewSession(w io.Writer) *Session {
	return &Session{w: w}
}

// Writeln word-wraps text and writes it followed by a newline.
func (s *Session) Writeln(text string) error {
	return s.write(display.Wrap(strings.TrimRight(text, "\n")) + "\n")
}

// Prompt writes text without a trailing newline.
func (s *Session) Prompt(text string) error {
	return s.write(text)
}

func (s *Session) write(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := io.WriteString(s.w, text)
	return err
}
