package game

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/display"
	"github.com/pixil98/go-rpg/internal/movement"
)

// Side says who controls an actor.
type Side int

const (
	SideNPC Side = iota
	SidePlayer
)

func (s Side) String() string {
	if s == SidePlayer {
		return "player"
	}
	return "npc"
}

// Actor is one living instance in the world: an archetype plus position,
// health and the behaviors that drive it.
type Actor struct {
	id        uuid.UUID
	name      string
	side      Side
	spawnId   string
	archetype *Archetype
	route     *ai.Route
	position  core.Vec3

	scheduler *core.Scheduler
	health    *core.Health
	mover     *movement.Mover
	fighter   *combat.Fighter
	arbiter   *ai.Arbiter
	state     ai.State

	publisher EventPublisher
	deadFor   time.Duration
}

func newActor(name string, side Side, arch *Archetype, pos core.Vec3, pub EventPublisher) *Actor {
	a := &Actor{
		id:        uuid.New(),
		name:      name,
		side:      side,
		archetype: arch,
		position:  pos,
		scheduler: &core.Scheduler{},
		publisher: pub,
	}
	a.health = core.NewHealth(arch.MaxHealth, a.scheduler, a)
	a.mover = movement.NewMover(a, a.scheduler, a.health, arch.Speed)
	a.fighter = combat.NewFighter(a, a.scheduler, a.mover, arch.weapon(), a)
	return a
}

// guard gives the actor an arbiter watching target.
func (a *Actor) guard(target core.Target, route *ai.Route) {
	a.route = route
	a.arbiter = ai.NewArbiter(a.archetype.AI.Config(), ai.ArbiterDeps{
		Health:    a.health,
		Scheduler: a.scheduler,
		Self:      a,
		Target:    target,
		Fighter:   a.fighter,
		Mover:     a.mover,
		Route:     route,
		Observer:  a,
	})
}

func (a *Actor) Id() uuid.UUID        { return a.id }
func (a *Actor) Name() string         { return a.name }
func (a *Actor) Side() Side           { return a.side }
func (a *Actor) Position() core.Vec3  { return a.position }
func (a *Actor) IsAlive() bool        { return a.health.IsAlive() }
func (a *Actor) Health() *core.Health { return a.health }
func (a *Actor) State() ai.State      { return a.state }

// SetPosition satisfies movement.Body.
func (a *Actor) SetPosition(p core.Vec3) {
	a.position = p
}

// TakeDamage satisfies core.Target.
func (a *Actor) TakeDamage(amount float64) {
	a.health.TakeDamage(amount)
}

// MatchName returns true if name is the actor's name, its name without a
// leading article, or an archetype alias (case-insensitive).
func (a *Actor) MatchName(name string) bool {
	name = strings.TrimSpace(name)
	if strings.EqualFold(a.name, name) || strings.EqualFold(trimArticle(a.name), name) {
		return true
	}
	return a.archetype.MatchName(name)
}

func trimArticle(name string) string {
	lower := strings.ToLower(name)
	for _, article := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(lower, article) {
			return name[len(article):]
		}
	}
	return name
}

// tick advances the actor by dt. NPCs are driven by their arbiter, which
// also advances the health timer and forgets old assaults. The player has no
// arbiter, so it forgets on the same window itself and stands down once dead.
func (a *Actor) tick(dt time.Duration) error {
	if a.arbiter != nil {
		if _, err := a.arbiter.Tick(dt); err != nil {
			return fmt.Errorf("actor %s: %w", a.name, err)
		}
	} else {
		a.health.Tick(dt)
		if a.health.IsAssaulted() && a.health.SinceAssault() > a.archetype.AI.Config().ForgetAggro {
			a.health.SetAssaulted(false)
		}
		if !a.health.IsAlive() {
			a.scheduler.CancelCurrentAction()
		}
	}

	a.fighter.Tick(dt)
	a.mover.Tick(dt)

	if a.health.IsAlive() && !a.health.IsAssaulted() && a.archetype.Regen > 0 {
		a.health.Heal(a.archetype.Regen * dt.Seconds())
	}

	if !a.health.IsAlive() {
		a.deadFor = core.AddSaturating(a.deadFor, dt)
	}
	return nil
}

// OnAssaultStarted satisfies core.HealthObserver.
func (a *Actor) OnAssaultStarted() {
	a.publish(Event{
		Kind:    EventAssault,
		Message: a.render(a.archetype.Messages.assault(), messageData{Actor: a.name}),
	})
}

// OnDeath satisfies core.HealthObserver.
func (a *Actor) OnDeath() {
	a.setState(ai.StateDead)
	a.publish(Event{
		Kind:    EventDeath,
		Message: a.render(a.archetype.Messages.death(), messageData{Actor: a.name}),
	})
}

// OnAttack satisfies combat.AttackObserver.
func (a *Actor) OnAttack(target core.Target, damage float64) {
	ev := Event{
		Kind:   EventAttack,
		Damage: damage,
	}
	data := messageData{
		Actor:  a.name,
		Target: "something",
		Verb:   combat.DamageVerb(damage),
		Damage: damage,
	}
	if t, ok := target.(*Actor); ok {
		ev.TargetId = t.id.String()
		ev.Target = t.name
		data.Target = t.name
	}
	ev.Message = a.render(a.archetype.Messages.attack(), data)
	a.publish(ev)
}

// OnStateChanged satisfies ai.StateObserver.
func (a *Actor) OnStateChanged(from, to ai.State) {
	a.setState(to)
	a.publish(Event{
		Kind: EventState,
		From: from.String(),
		To:   to.String(),
	})
}

func (a *Actor) setState(s ai.State) {
	a.state = s
}

func (a *Actor) render(tmpl string, data messageData) string {
	msg, err := display.Expand(tmpl, data)
	if err != nil {
		slog.Warn("rendering actor message", "actor", a.name, "error", err)
		return ""
	}
	return display.Capitalize(msg)
}

func (a *Actor) publish(ev Event) {
	if a.publisher == nil {
		return
	}
	ev.ActorId = a.id.String()
	ev.Actor = a.name
	if err := a.publisher.PublishEvent(ev); err != nil {
		slog.Warn("publishing actor event", "actor", a.name, "kind", ev.Kind, "error", err)
	}
}

// ActorInfo is a point-in-time copy of an actor, safe to read outside the
// world lock.
type ActorInfo struct {
	Id        uuid.UUID
	Name      string
	Side      Side
	Position  core.Vec3
	Points    float64
	MaxPoints float64
	Alive     bool
	Assaulted bool
	State     ai.State
	Moving    bool
	Target    string
	Route     *ai.Route
	Waypoint  int
}

func (a *Actor) info() ActorInfo {
	info := ActorInfo{
		Id:        a.id,
		Name:      a.name,
		Side:      a.side,
		Position:  a.position,
		Points:    a.health.Points(),
		MaxPoints: a.health.MaxPoints(),
		Alive:     a.health.IsAlive(),
		Assaulted: a.health.IsAssaulted(),
		State:     a.state,
		Moving:    a.mover.IsMoving(),
		Route:     a.route,
	}
	if t, ok := a.fighter.Target().(*Actor); ok && t != nil {
		info.Target = t.name
	}
	if a.arbiter != nil {
		info.Waypoint = a.arbiter.WaypointIndex()
	}
	return info
}
