package ai

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

// Config holds the tuning for one NPC's arbiter. Distances are in world
// units.
type Config struct {
	Aggression        Aggression
	ChaseDistance     float64
	SuspicionTime     time.Duration
	ForgetAggro       time.Duration
	WaypointTolerance float64
	PatrolDwellTime   time.Duration
}

// DefaultConfig returns the tuning a freshly placed guard gets.
func DefaultConfig() Config {
	return Config{
		Aggression:        AggressionPassive,
		ChaseDistance:     5,
		SuspicionTime:     3 * time.Second,
		ForgetAggro:       60 * time.Second,
		WaypointTolerance: 1,
		PatrolDwellTime:   3 * time.Second,
	}
}

func (c Config) Validate() error {
	el := errors.NewErrorList()

	if _, ok := aggressionNames[c.Aggression]; !ok {
		el.Add(fmt.Errorf("unknown aggression level: %d", int(c.Aggression)))
	}
	if c.ChaseDistance < 0 {
		el.Add(fmt.Errorf("chase distance must not be negative"))
	}
	if c.WaypointTolerance < 0 {
		el.Add(fmt.Errorf("waypoint tolerance must not be negative"))
	}
	if c.SuspicionTime < 0 {
		el.Add(fmt.Errorf("suspicion time must not be negative"))
	}
	if c.ForgetAggro < 0 {
		el.Add(fmt.Errorf("forget aggro must not be negative"))
	}
	if c.PatrolDwellTime < 0 {
		el.Add(fmt.Errorf("patrol dwell time must not be negative"))
	}

	return el.Err()
}
