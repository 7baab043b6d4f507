package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/storage"
)

// Spawn places one NPC in the world.
type Spawn struct {
	Archetype storage.SmartIdentifier[*Archetype] `json:"archetype"`

	// Name overrides the archetype name (e.g., "the gate guard").
	Name string `json:"name,omitempty"`

	Position core.Vec3 `json:"position"`

	// Route is optional. Without one the NPC guards its spawn position.
	Route storage.SmartIdentifier[*ai.Route] `json:"route"`

	// Respawn is how long the corpse lies before a fresh NPC replaces it.
	// Zero means never.
	Respawn core.Seconds `json:"respawn,omitempty"`
}

// Resolve resolves foreign keys from the dictionary.
func (s *Spawn) Resolve(dict *Dictionary) error {
	el := errors.NewErrorList()
	el.Add(s.Archetype.Resolve(dict.Archetypes))
	if s.Route.IsSet() {
		el.Add(s.Route.Resolve(dict.Routes))
	}
	return el.Err()
}

// DisplayName is the name the spawned actor goes by.
func (s *Spawn) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	if a := s.Archetype.Get(); a != nil {
		return a.Name
	}
	return s.Archetype.Id()
}

// Validate satisfies storage.ValidatingSpec
func (s *Spawn) Validate() error {
	el := errors.NewErrorList()
	el.Add(s.Archetype.Validate())
	if s.Respawn < 0 {
		el.Add(fmt.Errorf("spawn respawn must not be negative"))
	}
	return el.Err()
}
