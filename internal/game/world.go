package game

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/core"
)

const DefaultStep = 250 * time.Millisecond

// PlayerConfig describes the player-controlled actor.
type PlayerConfig struct {
	Name      string    `json:"name"`
	Archetype string    `json:"archetype"`
	Position  core.Vec3 `json:"position"`
}

func (c *PlayerConfig) Validate() error {
	el := errors.NewErrorList()
	if c.Name == "" {
		el.Add(fmt.Errorf("player name is required"))
	}
	if c.Archetype == "" {
		el.Add(fmt.Errorf("player archetype is required"))
	}
	return el.Err()
}

// World is the single source of truth for all actors. All access must go
// through its methods to ensure thread-safety.
type World struct {
	mu        sync.RWMutex
	dict      *Dictionary
	publisher EventPublisher
	step      time.Duration

	player *Actor
	npcs   []*Actor
	byId   map[uuid.UUID]*Actor
}

type WorldOpt func(*World)

// WithStep sets the simulated time one Tick advances.
func WithStep(d time.Duration) WorldOpt {
	return func(w *World) {
		w.step = d
	}
}

// NewWorld spawns the player and every NPC in dict. dict must already be
// resolved. pub may be nil.
func NewWorld(dict *Dictionary, player PlayerConfig, pub EventPublisher, opts ...WorldOpt) (*World, error) {
	w := &World{
		dict:      dict,
		publisher: pub,
		step:      DefaultStep,
		byId:      map[uuid.UUID]*Actor{},
	}
	for _, opt := range opts {
		opt(w)
	}

	arch := dict.Archetypes.Get(player.Archetype)
	if arch == nil {
		return nil, fmt.Errorf("player archetype %q: %w", player.Archetype, ErrActorNotFound)
	}
	w.player = newActor(player.Name, SidePlayer, arch, player.Position, pub)
	w.byId[w.player.id] = w.player

	spawns := dict.Spawns.GetAll()
	ids := make([]string, 0, len(spawns))
	for id := range spawns {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if _, err := w.spawn(id, spawns[id]); err != nil {
			return nil, err
		}
	}

	return w, nil
}

func (w *World) spawn(id string, s *Spawn) (*Actor, error) {
	arch := s.Archetype.Get()
	if arch == nil {
		return nil, fmt.Errorf("spawn %s: archetype %q not resolved", id, s.Archetype.Id())
	}

	a := newActor(s.DisplayName(), SideNPC, arch, s.Position, w.publisher)
	a.spawnId = id
	a.guard(w.player, s.Route.Get())

	w.npcs = append(w.npcs, a)
	w.byId[a.id] = a
	return a, nil
}

// Tick advances every actor by one step. The first actor error stops the
// tick and is returned.
func (w *World) Tick(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.player.tick(w.step); err != nil {
		return err
	}
	for _, a := range w.npcs {
		if err := a.tick(w.step); err != nil {
			return err
		}
	}

	w.respawn(ctx)
	return nil
}

// respawn replaces NPCs whose corpse has lain for their spawn's respawn time.
func (w *World) respawn(ctx context.Context) {
	for i, a := range w.npcs {
		if a.IsAlive() || a.spawnId == "" {
			continue
		}
		s := w.dict.Spawns.Get(a.spawnId)
		if s == nil || s.Respawn <= 0 || a.deadFor < s.Respawn.Duration() {
			continue
		}

		fresh := newActor(s.DisplayName(), SideNPC, s.Archetype.Get(), s.Position, w.publisher)
		fresh.spawnId = a.spawnId
		fresh.guard(w.player, s.Route.Get())

		delete(w.byId, a.id)
		w.byId[fresh.id] = fresh
		w.npcs[i] = fresh

		slog.InfoContext(ctx, "actor respawned", "spawn", a.spawnId, "id", fresh.id)
		fresh.publish(Event{Kind: EventSpawn, Message: fmt.Sprintf("%s appears.", fresh.name)})
	}
}

// Player returns a copy of the player actor.
func (w *World) Player() ActorInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.player.info()
}

// Actors returns a copy of every actor, player first.
func (w *World) Actors() []ActorInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	infos := make([]ActorInfo, 0, len(w.npcs)+1)
	infos = append(infos, w.player.info())
	for _, a := range w.npcs {
		infos = append(infos, a.info())
	}
	return infos
}

// Actor returns a copy of the actor with the given id.
func (w *World) Actor(id uuid.UUID) (ActorInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	a, ok := w.byId[id]
	if !ok {
		return ActorInfo{}, ErrActorNotFound
	}
	return a.info(), nil
}

// FindByName returns the first NPC matching name, preferring living ones.
func (w *World) FindByName(name string) (ActorInfo, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	a := w.findNPC(name)
	if a == nil {
		return ActorInfo{}, fmt.Errorf("%q: %w", name, ErrActorNotFound)
	}
	return a.info(), nil
}

func (w *World) findNPC(name string) *Actor {
	var dead *Actor
	for _, a := range w.npcs {
		if !a.MatchName(name) {
			continue
		}
		if a.IsAlive() {
			return a
		}
		if dead == nil {
			dead = a
		}
	}
	return dead
}

// PlayerAttack makes the player attack the NPC matching name.
func (w *World) PlayerAttack(name string) (ActorInfo, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.player.IsAlive() {
		return ActorInfo{}, ErrPlayerDead
	}

	a := w.findNPC(name)
	if a == nil {
		return ActorInfo{}, fmt.Errorf("%q: %w", name, ErrActorNotFound)
	}
	if !w.player.fighter.CanAttack(a) {
		return ActorInfo{}, fmt.Errorf("%s: %w", a.name, ErrTargetDead)
	}

	w.player.fighter.Attack(a)
	return a.info(), nil
}

// PlayerMove walks the player to dest, abandoning any fight.
func (w *World) PlayerMove(dest core.Vec3) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !dest.IsFinite() {
		return fmt.Errorf("moving to %v: %w", dest, ErrBadPosition)
	}
	if !w.player.IsAlive() {
		return ErrPlayerDead
	}
	w.player.mover.StartMoveAction(dest)
	return nil
}

// PlayerStop cancels whatever the player is doing.
func (w *World) PlayerStop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.player.IsAlive() {
		return ErrPlayerDead
	}
	w.player.scheduler.CancelCurrentAction()
	return nil
}
