package console

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/display"
	"github.com/pixil98/go-rpg/internal/game"
)

func describe(a game.ActorInfo, from core.Vec3) string {
	name := display.Title(a.Name)
	if !a.Alive {
		return fmt.Sprintf("%s lies dead at %s.", name, a.Position)
	}
	return fmt.Sprintf("%s (%.0f/%.0f) is %s, %.1f away.",
		name, a.Points, a.MaxPoints, a.State, core.Distance(from, a.Position))
}

// parseCoord reads one finite coordinate.
func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("coordinate %q is not finite", s)
	}
	return v, nil
}
