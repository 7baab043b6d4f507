package ai

import (
	"fmt"
	"time"

	bt "github.com/joeycumines/go-behaviortree"
	"github.com/pixil98/go-rpg/internal/core"
)

// State is the behavior an arbiter picked on its last tick.
type State int

const (
	StateIdle State = iota
	StateAttacking
	StateSuspicious
	StatePatrolling
	StateDead
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttacking:
		return "attacking"
	case StateSuspicious:
		return "suspicious"
	case StatePatrolling:
		return "patrolling"
	case StateDead:
		return "dead"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Positioner reports where something is.
type Positioner interface {
	Position() core.Vec3
}

// Attacker engages a target on the arbiter's behalf.
type Attacker interface {
	CanAttack(t core.Target) bool
	Attack(t core.Target)
}

// Walker moves the actor on the arbiter's behalf.
type Walker interface {
	StartMoveAction(dest core.Vec3)
}

// StateObserver is told when the arbiter switches behavior.
type StateObserver interface {
	OnStateChanged(from, to State)
}

// ArbiterDeps are the collaborators an arbiter drives. Health, Scheduler and
// Self are required; the rest may be nil.
type ArbiterDeps struct {
	Health    *core.Health
	Scheduler *core.Scheduler
	Self      Positioner
	Target    core.Target
	Fighter   Attacker
	Mover     Walker
	Route     *Route
	Observer  StateObserver
}

// Arbiter picks one of attack, suspicion or patrol for an NPC every tick.
type Arbiter struct {
	cfg  Config
	deps ArbiterDeps

	guard          core.Vec3
	sinceSawTarget time.Duration
	patrolDwell    time.Duration
	waypoint       int
	state          State

	// recomputed at the start of every tick
	inRange bool

	tree bt.Node
}

// NewArbiter creates an arbiter guarding the actor's current position.
func NewArbiter(cfg Config, deps ArbiterDeps) *Arbiter {
	a := &Arbiter{
		cfg:            cfg,
		deps:           deps,
		sinceSawTarget: core.Never,
		patrolDwell:    core.Never,
	}
	if deps.Self != nil {
		a.guard = deps.Self.Position()
	}
	a.tree = a.buildTree()
	return a
}

// State returns the behavior picked on the last tick.
func (a *Arbiter) State() State { return a.state }

// WaypointIndex returns the patrol waypoint the NPC is heading for.
func (a *Arbiter) WaypointIndex() int { return a.waypoint }

// GuardPosition returns where the NPC stands watch when it has no route.
func (a *Arbiter) GuardPosition() core.Vec3 { return a.guard }

// Tick runs one evaluation and advances the arbiter's timers by dt.
func (a *Arbiter) Tick(dt time.Duration) (State, error) {
	if a.deps.Health == nil || a.deps.Scheduler == nil || a.deps.Self == nil {
		return a.state, fmt.Errorf("ticking arbiter without health, scheduler or position: %w", core.ErrInvalidState)
	}

	if !a.deps.Health.IsAlive() {
		a.deps.Scheduler.CancelCurrentAction()
		a.setState(StateDead)
		return a.state, nil
	}

	a.inRange = a.targetInRange()

	_, err := a.tree.Tick()
	if err != nil {
		return a.state, fmt.Errorf("evaluating behavior: %w", err)
	}

	a.updateAssaultMemory()
	a.updateTimers(dt)

	return a.state, nil
}

func (a *Arbiter) buildTree() bt.Node {
	return bt.New(
		bt.Selector,
		bt.New(
			bt.Sequence,
			condition(a.isAggro),
			condition(func() bool { return a.inRange }),
			condition(a.canAttack),
			action(a.attackBehavior),
		),
		bt.New(
			bt.Sequence,
			condition(a.isSuspicious),
			action(a.suspicionBehavior),
		),
		action(a.patrolBehavior),
	)
}

func condition(fn func() bool) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if fn() {
			return bt.Success, nil
		}
		return bt.Failure, nil
	})
}

func action(fn func() error) bt.Node {
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if err := fn(); err != nil {
			return bt.Failure, err
		}
		return bt.Success, nil
	})
}

func (a *Arbiter) targetInRange() bool {
	if a.deps.Target == nil {
		return false
	}
	return core.Distance(a.deps.Self.Position(), a.deps.Target.Position()) < a.cfg.ChaseDistance
}

func (a *Arbiter) isAggro() bool {
	switch a.cfg.Aggression {
	case AggressionReactive:
		return a.deps.Health.SinceAssault() < a.cfg.ForgetAggro || a.deps.Health.IsAssaulted()
	case AggressionAlways:
		return true
	default:
		return false
	}
}

func (a *Arbiter) canAttack() bool {
	return a.deps.Fighter != nil && a.deps.Target != nil && a.deps.Fighter.CanAttack(a.deps.Target)
}

func (a *Arbiter) isSuspicious() bool {
	return a.sinceSawTarget < a.cfg.SuspicionTime
}

func (a *Arbiter) attackBehavior() error {
	a.setState(StateAttacking)
	a.sinceSawTarget = 0
	a.deps.Fighter.Attack(a.deps.Target)
	return nil
}

func (a *Arbiter) suspicionBehavior() error {
	a.setState(StateSuspicious)
	a.deps.Scheduler.CancelCurrentAction()
	return nil
}

func (a *Arbiter) patrolBehavior() error {
	a.setState(StatePatrolling)

	next := a.guard
	if a.deps.Route.Len() > 0 {
		at, err := a.atWaypoint()
		if err != nil {
			return err
		}
		if at {
			a.cycleWaypoint()
		}

		next, err = a.deps.Route.Waypoint(a.waypoint)
		if err != nil {
			return err
		}
	}

	if a.patrolDwell >= a.cfg.PatrolDwellTime && a.deps.Mover != nil {
		a.deps.Mover.StartMoveAction(next)
	}
	return nil
}

func (a *Arbiter) atWaypoint() (bool, error) {
	wp, err := a.deps.Route.Waypoint(a.waypoint)
	if err != nil {
		return false, err
	}
	return core.Distance(a.deps.Self.Position(), wp) < a.cfg.WaypointTolerance, nil
}

func (a *Arbiter) cycleWaypoint() {
	a.patrolDwell = 0
	a.waypoint = a.deps.Route.NextIndex(a.waypoint)
}

// updateAssaultMemory renews a grudge whose window ran out while the target
// is still close, and forgets it otherwise.
func (a *Arbiter) updateAssaultMemory() {
	if !a.deps.Health.IsAssaulted() || a.deps.Health.SinceAssault() <= a.cfg.ForgetAggro {
		return
	}
	if a.inRange {
		a.deps.Health.ResetAssaultTimer()
		return
	}
	a.deps.Health.SetAssaulted(false)
}

func (a *Arbiter) updateTimers(dt time.Duration) {
	a.sinceSawTarget = core.AddSaturating(a.sinceSawTarget, dt)
	a.patrolDwell = core.AddSaturating(a.patrolDwell, dt)
	a.deps.Health.Tick(dt)
}

func (a *Arbiter) setState(s State) {
	if s == a.state {
		return
	}
	prev := a.state
	a.state = s
	if a.deps.Observer != nil {
		a.deps.Observer.OnStateChanged(prev, s)
	}
}
