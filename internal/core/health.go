package core

import (
	"math"
	"time"
)

// Never is the value of a timer that has not started yet. Timers saturate
// here instead of overflowing.
const Never = time.Duration(math.MaxInt64)

// HealthObserver is notified of the two side effects damage can cause.
// Sound and animation collaborators hang off this.
type HealthObserver interface {
	OnAssaultStarted()
	OnDeath()
}

// Health holds an actor's hit points and its memory of being attacked.
type Health struct {
	points       float64
	maxPoints    float64
	alive        bool
	assaulted    bool
	sinceAssault time.Duration

	scheduler *Scheduler
	observer  HealthObserver
}

// NewHealth creates a living Health with the given points. The scheduler is
// released on death; observer may be nil.
func NewHealth(points float64, scheduler *Scheduler, observer HealthObserver) *Health {
	if points < 0 {
		points = 0
	}
	return &Health{
		points:       points,
		maxPoints:    points,
		alive:        points > 0,
		sinceAssault: Never,
		scheduler:    scheduler,
		observer:     observer,
	}
}

func (h *Health) IsAlive() bool               { return h.alive }
func (h *Health) IsAssaulted() bool           { return h.assaulted }
func (h *Health) SinceAssault() time.Duration { return h.sinceAssault }
func (h *Health) Points() float64             { return h.points }
func (h *Health) MaxPoints() float64          { return h.maxPoints }

// TakeDamage applies amount to the actor. Damage to a dead actor changes
// nothing and notifies no one.
func (h *Health) TakeDamage(amount float64) {
	if !h.alive {
		return
	}
	// NaN and negative damage count as zero
	if !(amount > 0) {
		amount = 0
	}

	h.points = math.Max(h.points-amount, 0)

	if h.points > 0 && !h.assaulted {
		h.assaulted = true
		h.sinceAssault = 0
		if h.observer != nil {
			h.observer.OnAssaultStarted()
		}
	}

	if h.points == 0 {
		h.die()
	}
}

func (h *Health) die() {
	h.alive = false
	if h.observer != nil {
		h.observer.OnDeath()
	}
	if h.scheduler != nil {
		h.scheduler.CancelCurrentAction()
	}
}

// Tick advances the time since the last assault.
func (h *Health) Tick(dt time.Duration) {
	h.sinceAssault = AddSaturating(h.sinceAssault, dt)
}

// SetAssaulted sets or clears the assault flag without touching the timer.
func (h *Health) SetAssaulted(v bool) {
	h.assaulted = v
}

// ResetAssaultTimer restarts the assault memory window.
func (h *Health) ResetAssaultTimer() {
	h.sinceAssault = 0
}

// Heal restores points on a living actor, up to its maximum.
func (h *Health) Heal(amount float64) {
	if !h.alive || !(amount > 0) {
		return
	}
	h.points = math.Min(h.points+amount, h.maxPoints)
}

// AddSaturating advances timer t by dt, stopping at Never.
func AddSaturating(t, dt time.Duration) time.Duration {
	if dt <= 0 {
		return t
	}
	if t >= Never-dt {
		return Never
	}
	return t + dt
}
