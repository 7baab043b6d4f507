package game

import (
	"fmt"

	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/storage"
)

// Dictionary holds all game definition stores. It provides a single
// reference that can be passed to resolution methods so they all
// share the same signature.
type Dictionary struct {
	Archetypes storage.Storer[*Archetype]
	Routes     storage.Storer[*ai.Route]
	Spawns     storage.Storer[*Spawn]
}

// Resolve resolves all foreign key references.
func (d *Dictionary) Resolve() error {
	for id, spawn := range d.Spawns.GetAll() {
		if err := spawn.Resolve(d); err != nil {
			return fmt.Errorf("spawn %s: %w", id, err)
		}
	}
	return nil
}
