package combat

import "math/rand/v2"

// RollDamage rolls NdS + modifier, with a minimum result of 1.
func RollDamage(dice, sides, mod int) int {
	total := mod
	for range dice {
		total += rand.IntN(max(sides, 1)) + 1
	}
	if total < 1 {
		total = 1
	}
	return total
}

var damageMessages = []struct {
	maxDamage float64
	verb3rd   string // "{attacker} {verb} {target}!"
}{
	{0, "misses"},
	{2, "barely scratches"},
	{4, "tickles"},
	{6, "barely hurts"},
	{10, "hits"},
	{14, "hits hard"},
	{19, "pummels"},
	{24, "thrashes"},
	{30, "mauls"},
	{40, "decimates"},
	{50, "devastates"},
}

// DamageVerb returns the 3rd person verb for a damage amount.
func DamageVerb(damage float64) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb3rd
		}
	}
	return "annihilates"
}
