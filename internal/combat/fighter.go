package combat

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/core"
)

// Weapon describes how an actor hits. Damage is DamageDice d DamageSides +
// DamageMod.
type Weapon struct {
	Range       float64      `json:"range"`
	Cooldown    core.Seconds `json:"cooldown"`
	DamageDice  int          `json:"damage_dice"`
	DamageSides int          `json:"damage_sides"`
	DamageMod   int          `json:"damage_mod"`
}

// DefaultWeapon is a pair of fists.
func DefaultWeapon() Weapon {
	return Weapon{
		Range:       2,
		Cooldown:    1,
		DamageDice:  1,
		DamageSides: 4,
		DamageMod:   3,
	}
}

func (w *Weapon) Validate() error {
	el := errors.NewErrorList()
	if w.Range <= 0 {
		el.Add(fmt.Errorf("weapon range must be positive"))
	}
	if w.Cooldown < 0 {
		el.Add(fmt.Errorf("weapon cooldown must not be negative"))
	}
	if w.DamageDice < 0 || w.DamageSides < 0 {
		el.Add(fmt.Errorf("weapon dice must not be negative"))
	}
	return el.Err()
}

// Positioner reports where the fighter stands.
type Positioner interface {
	Position() core.Vec3
}

// Chaser closes distance to a target without claiming the actor.
type Chaser interface {
	MoveTo(dest core.Vec3)
	Stop()
}

// AttackObserver is told about every swing that lands.
type AttackObserver interface {
	OnAttack(target core.Target, damage float64)
}

// Fighter chases and hits a single target while it owns the actor.
type Fighter struct {
	self      Positioner
	scheduler *core.Scheduler
	mover     Chaser
	weapon    Weapon
	observer  AttackObserver

	target      core.Target
	sinceAttack time.Duration
}

// NewFighter creates an idle fighter. observer may be nil.
func NewFighter(self Positioner, scheduler *core.Scheduler, mover Chaser, weapon Weapon, observer AttackObserver) *Fighter {
	return &Fighter{
		self:        self,
		scheduler:   scheduler,
		mover:       mover,
		weapon:      weapon,
		observer:    observer,
		sinceAttack: core.Never,
	}
}

// CanAttack reports whether t is a living target.
func (f *Fighter) CanAttack(t core.Target) bool {
	return t != nil && t.IsAlive()
}

// Attack takes control of the actor and engages t.
func (f *Fighter) Attack(t core.Target) {
	f.scheduler.StartAction(f)
	f.target = t
}

// Cancel satisfies core.ActionOwner. Any chase in progress stops with it.
func (f *Fighter) Cancel() {
	f.target = nil
	f.mover.Stop()
}

// Target returns the current target, or nil.
func (f *Fighter) Target() core.Target {
	return f.target
}

// Tick chases the target until it is within weapon range, then swings
// whenever the cooldown has passed.
func (f *Fighter) Tick(dt time.Duration) {
	if f.target == nil || !f.target.IsAlive() {
		return
	}

	f.sinceAttack = core.AddSaturating(f.sinceAttack, dt)

	if !f.inRange() {
		f.mover.MoveTo(f.target.Position())
		return
	}

	f.mover.Stop()
	if f.sinceAttack > f.weapon.Cooldown.Duration() {
		f.sinceAttack = 0
		f.hit()
	}
}

func (f *Fighter) inRange() bool {
	return core.Distance(f.self.Position(), f.target.Position()) < f.weapon.Range
}

func (f *Fighter) hit() {
	dmg := float64(RollDamage(f.weapon.DamageDice, f.weapon.DamageSides, f.weapon.DamageMod))
	target := f.target
	target.TakeDamage(dmg)
	if f.observer != nil {
		f.observer.OnAttack(target, dmg)
	}
}
