package movement

import (
	"time"

	"github.com/pixil98/go-rpg/internal/core"
)

// Body is the position a Mover drives.
type Body interface {
	Position() core.Vec3
	SetPosition(core.Vec3)
}

// Mover walks an actor in a straight line toward a destination.
type Mover struct {
	body      Body
	scheduler *core.Scheduler
	health    *core.Health
	speed     float64

	dest    core.Vec3
	stopped bool
}

// NewMover creates a stopped Mover. speed is in world units per second.
func NewMover(body Body, scheduler *core.Scheduler, health *core.Health, speed float64) *Mover {
	return &Mover{
		body:      body,
		scheduler: scheduler,
		health:    health,
		speed:     speed,
		stopped:   true,
	}
}

// StartMoveAction takes control of the actor and walks it to dest.
func (m *Mover) StartMoveAction(dest core.Vec3) {
	m.scheduler.StartAction(m)
	m.MoveTo(dest)
}

// MoveTo walks toward dest without claiming the actor. The fighter uses this
// to close distance while it owns the actor.
func (m *Mover) MoveTo(dest core.Vec3) {
	m.dest = dest
	m.stopped = false
}

// Stop halts in place.
func (m *Mover) Stop() {
	m.stopped = true
}

// Cancel satisfies core.ActionOwner.
func (m *Mover) Cancel() {
	m.Stop()
}

func (m *Mover) IsMoving() bool         { return !m.stopped }
func (m *Mover) Destination() core.Vec3 { return m.dest }

// Tick advances the body by one step. Dead actors do not move.
func (m *Mover) Tick(dt time.Duration) {
	if m.stopped {
		return
	}
	if m.health != nil && !m.health.IsAlive() {
		return
	}

	next := core.Towards(m.body.Position(), m.dest, m.speed*dt.Seconds())
	m.body.SetPosition(next)
	if next == m.dest {
		m.stopped = true
	}
}
