package ai

import "fmt"

// Aggression decides whether an NPC starts fights.
type Aggression int

const (
	// AggressionPassive never attacks.
	AggressionPassive Aggression = iota
	// AggressionReactive attacks only while it remembers being assaulted.
	AggressionReactive
	// AggressionAlways attacks anything in range.
	AggressionAlways
)

var aggressionNames = map[Aggression]string{
	AggressionPassive:  "passive",
	AggressionReactive: "reactive",
	AggressionAlways:   "aggressive",
}

func (a Aggression) String() string {
	if s, ok := aggressionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("aggression(%d)", int(a))
}

func (a Aggression) MarshalText() ([]byte, error) {
	if _, ok := aggressionNames[a]; !ok {
		return nil, fmt.Errorf("unknown aggression level: %d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *Aggression) UnmarshalText(text []byte) error {
	switch string(text) {
	case "passive":
		*a = AggressionPassive
	case "reactive":
		*a = AggressionReactive
	case "aggressive":
		*a = AggressionAlways
	default:
		return fmt.Errorf("unknown aggression level: %s", text)
	}
	return nil
}
