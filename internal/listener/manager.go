package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// SessionRunner drives one connected operator until they leave.
type SessionRunner interface {
	RunSession(ctx context.Context, rw io.ReadWriter, operator string) error
}

// Operator is who sits at the far end of a connection.
type Operator struct {
	User     string
	Remote   string
	Protocol string
}

// String renders the operator as user@remote (protocol). Telnet has no login
// so its sessions show up as guests.
func (o Operator) String() string {
	user := o.User
	if user == "" {
		user = "guest"
	}
	if o.Remote == "" {
		return fmt.Sprintf("%s (%s)", user, o.Protocol)
	}
	return fmt.Sprintf("%s@%s (%s)", user, o.Remote, o.Protocol)
}

// ConnectionManager hands every accepted connection, whatever the protocol,
// to the console and keeps the roster of who is connected.
type ConnectionManager struct {
	runner SessionRunner

	mu       sync.Mutex
	nextId   uint64
	sessions map[uint64]Operator
}

func NewConnectionManager(runner SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		runner:   runner,
		sessions: map[uint64]Operator{},
	}
}

// Active lists the operators with a running session, sorted.
func (m *ConnectionManager) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ops := make([]string, 0, len(m.sessions))
	for _, op := range m.sessions {
		ops = append(ops, op.String())
	}
	slices.Sort(ops)
	return ops
}

// AcceptConnection runs a console session for op over conn and returns when
// it ends.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, op Operator, conn io.ReadWriter) {
	id, n := m.join(op)
	defer m.leave(id)

	log := slog.With("operator", op.String())
	log.InfoContext(ctx, "console session started", "active", n)
	if err := m.runner.RunSession(ctx, newLineConn(conn), op.String()); err != nil {
		log.WarnContext(ctx, "console session", "error", err)
	}
	log.InfoContext(ctx, "console session ended")
}

func (m *ConnectionManager) join(op Operator) (uint64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextId++
	m.sessions[m.nextId] = op
	return m.nextId, len(m.sessions)
}

func (m *ConnectionManager) leave(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)
}
