package game

import (
	"maps"
	"testing"

	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/storage"
)

// memStore implements storage.Storer for testing
type memStore[T storage.ValidatingSpec] struct {
	records map[string]T
}

func newMemStore[T storage.ValidatingSpec](records map[string]T) *memStore[T] {
	if records == nil {
		records = map[string]T{}
	}
	return &memStore[T]{records: records}
}

func (s *memStore[T]) Get(id string) T {
	return s.records[id]
}

func (s *memStore[T]) GetAll() map[string]T {
	return maps.Clone(s.records)
}

// recordingPublisher keeps every event it is handed
type recordingPublisher struct {
	events []Event
}

func (p *recordingPublisher) PublishEvent(ev Event) error {
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) kinds() []EventKind {
	kinds := make([]EventKind, len(p.events))
	for i, ev := range p.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

// fixedWeapon hits for exactly dmg every cooldown seconds.
func fixedWeapon(dmg int, cooldown float64) *combat.Weapon {
	return &combat.Weapon{
		Range:     2,
		Cooldown:  core.Seconds(cooldown),
		DamageMod: dmg,
	}
}

func heroArchetype() *Archetype {
	return &Archetype{
		Name:      "the hero",
		MaxHealth: 10,
		Speed:     2,
		Weapon:    fixedWeapon(5, 0.5),
	}
}

func guardArchetype(aggression ai.Aggression, hp float64) *Archetype {
	return &Archetype{
		Name:      "the gate guard",
		Aliases:   []string{"guard"},
		MaxHealth: hp,
		Speed:     1,
		Weapon:    fixedWeapon(5, 0.5),
		AI:        AIProfile{Aggression: aggression},
	}
}

func newTestDict(t *testing.T, archetypes map[string]*Archetype, spawns map[string]*Spawn, routes map[string]*ai.Route) *Dictionary {
	t.Helper()
	dict := &Dictionary{
		Archetypes: newMemStore(archetypes),
		Routes:     newMemStore(routes),
		Spawns:     newMemStore(spawns),
	}
	if err := dict.Resolve(); err != nil {
		t.Fatalf("resolving dictionary: %v", err)
	}
	return dict
}
