package ai

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/core"
)

// Route is a cyclic patrol path loaded from asset files.
type Route struct {
	// Name is shown to operators inspecting the route
	Name string `json:"name,omitempty"`

	Waypoints []core.Vec3 `json:"waypoints"`
}

// Validate satisfies storage.ValidatingSpec
func (r *Route) Validate() error {
	el := errors.NewErrorList()
	if len(r.Waypoints) < 1 {
		el.Add(fmt.Errorf("route requires at least one waypoint"))
	}
	return el.Err()
}

// Len returns the number of waypoints. A nil route has none.
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Waypoints)
}

// NextIndex returns the index after i, wrapping to 0 after the last
// waypoint. Callers must check Len() > 0 first.
func (r *Route) NextIndex(i int) int {
	if i+1 >= r.Len() {
		return 0
	}
	return i + 1
}

// Waypoint returns the position of waypoint i.
func (r *Route) Waypoint(i int) (core.Vec3, error) {
	if i < 0 || i >= r.Len() {
		return core.Vec3{}, fmt.Errorf("waypoint %d of %d: %w", i, r.Len(), core.ErrInvalidState)
	}
	return r.Waypoints[i], nil
}
