package game

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/ai"
	"github.com/pixil98/go-rpg/internal/combat"
	"github.com/pixil98/go-rpg/internal/core"
	"github.com/pixil98/go-rpg/internal/display"
)

const (
	defaultAssaultMessage = "{{ .Actor }} shouts in alarm!"
	defaultDeathMessage   = "{{ .Actor }} collapses."
	defaultAttackMessage  = "{{ .Actor }} {{ .Verb }} {{ .Target }}."
)

// Archetype defines a kind of actor loaded from asset files. Spawns and the
// player are built from one.
type Archetype struct {
	// Name is used in messages (e.g., "the cave goblin").
	Name string `json:"name"`

	// Aliases are extra keywords that target this actor (e.g., ["goblin"]).
	Aliases []string `json:"aliases,omitempty"`

	MaxHealth float64 `json:"max_health"`

	// Speed is in world units per second.
	Speed float64 `json:"speed"`

	// Regen is points healed per second while not under assault.
	Regen float64 `json:"regen,omitempty"`

	Weapon *combat.Weapon `json:"weapon,omitempty"`

	AI AIProfile `json:"ai"`

	Messages Messages `json:"messages"`
}

// AIProfile is the on-disk arbiter tuning. Zero fields keep the defaults.
type AIProfile struct {
	Aggression        ai.Aggression `json:"aggression"`
	ChaseDistance     float64       `json:"chase_distance,omitempty"`
	SuspicionTime     core.Seconds  `json:"suspicion_time,omitempty"`
	ForgetAggro       core.Seconds  `json:"forget_aggro,omitempty"`
	WaypointTolerance float64       `json:"waypoint_tolerance,omitempty"`
	PatrolDwellTime   core.Seconds  `json:"patrol_dwell_time,omitempty"`
}

// Config converts the profile to arbiter tuning.
func (p AIProfile) Config() ai.Config {
	cfg := ai.DefaultConfig()
	cfg.Aggression = p.Aggression
	if p.ChaseDistance != 0 {
		cfg.ChaseDistance = p.ChaseDistance
	}
	if p.SuspicionTime != 0 {
		cfg.SuspicionTime = p.SuspicionTime.Duration()
	}
	if p.ForgetAggro != 0 {
		cfg.ForgetAggro = p.ForgetAggro.Duration()
	}
	if p.WaypointTolerance != 0 {
		cfg.WaypointTolerance = p.WaypointTolerance
	}
	if p.PatrolDwellTime != 0 {
		cfg.PatrolDwellTime = p.PatrolDwellTime.Duration()
	}
	return cfg
}

// Messages are templates shown to consoles when things happen to an actor.
// Templates see .Actor, .Target, .Verb and .Damage.
type Messages struct {
	Assault string `json:"assault,omitempty"`
	Death   string `json:"death,omitempty"`
	Attack  string `json:"attack,omitempty"`
}

func (m Messages) assault() string { return orDefault(m.Assault, defaultAssaultMessage) }
func (m Messages) death() string   { return orDefault(m.Death, defaultDeathMessage) }
func (m Messages) attack() string  { return orDefault(m.Attack, defaultAttackMessage) }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// MatchName returns true if name matches the archetype's name or any of its
// aliases (case-insensitive).
func (a *Archetype) MatchName(name string) bool {
	if strings.EqualFold(a.Name, name) {
		return true
	}
	for _, alias := range a.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

func (a *Archetype) weapon() combat.Weapon {
	if a.Weapon == nil {
		return combat.DefaultWeapon()
	}
	return *a.Weapon
}

// Validate satisfies storage.ValidatingSpec
func (a *Archetype) Validate() error {
	el := errors.NewErrorList()

	if a.Name == "" {
		el.Add(fmt.Errorf("archetype name is required"))
	}
	if a.MaxHealth <= 0 {
		el.Add(fmt.Errorf("archetype max health must be positive"))
	}
	if a.Speed < 0 {
		el.Add(fmt.Errorf("archetype speed must not be negative"))
	}
	if a.Regen < 0 {
		el.Add(fmt.Errorf("archetype regen must not be negative"))
	}
	if a.Weapon != nil {
		el.Add(a.Weapon.Validate())
	}
	el.Add(a.AI.Config().Validate())

	for _, tmpl := range []string{a.Messages.Assault, a.Messages.Death, a.Messages.Attack} {
		if tmpl == "" {
			continue
		}
		if _, err := display.Parse(tmpl); err != nil {
			el.Add(fmt.Errorf("archetype message: %w", err))
		}
	}

	return el.Err()
}
