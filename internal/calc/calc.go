// Package calc holds the two calculators the turn engine consumes: an
// effective-stat calculator for order resolution and a damage/matchup
// calculator for effect application. The engine never computes damage or
// modified stats itself; it only consumes these results.
package calc

import (
	"fmt"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// Matchup is the damage calculator's output for one attacker/defender/move
// triple: a damage range, a textual summary and a knockout descriptor.
type Matchup struct {
	MinDamage int    `json:"min_damage"`
	MaxDamage int    `json:"max_damage"`
	Summary   string `json:"summary"`
	KOChance  string `json:"ko_chance"`
}

// Midpoint returns the arithmetic midpoint of the range, rounded down.
// Applying the midpoint is the engine's documented policy; the calculator
// itself only reports the range.
func (m Matchup) Midpoint() int {
	return (m.MinDamage + m.MaxDamage) / 2
}

// StatCalculator produces fully modified stat values.
type StatCalculator interface {
	// EffectiveSpeed is the combatant's speed after stage modifiers and
	// status, under the given field conditions.
	EffectiveSpeed(c *battle.Combatant, field battle.FieldConditions) int
}

// DamageCalculator produces a Matchup for one action.
type DamageCalculator interface {
	Calculate(attacker, defender *battle.Combatant, move *dex.Move, field battle.FieldConditions) Matchup
}

// stageNumer/stageDenom encode the conventional stage multiplier table:
// +n -> (2+n)/2, -n -> 2/(2+n).
func stageMultiplied(stat, stage int) int {
	if stage > 6 {
		stage = 6
	}
	if stage < -6 {
		stage = -6
	}
	if stage >= 0 {
		return stat * (2 + stage) / 2
	}
	return stat * 2 / (2 - stage)
}

// Stats is the default StatCalculator.
type Stats struct{}

// EffectiveSpeed applies the speed stage multiplier and halves speed under
// paralysis.
func (Stats) EffectiveSpeed(c *battle.Combatant, field battle.FieldConditions) int {
	if c == nil {
		return 0
	}
	spe := stageMultiplied(c.Stats.Spe, c.Stages.Spe)
	if c.Status == battle.StatusParalysis {
		spe /= 2
	}
	if spe < 0 {
		spe = 0
	}
	return spe
}

// Damage is the default DamageCalculator: the standard level-based damage
// formula with a uniform 85%..100% roll range and no type chart. It exists
// so the service is usable stand-alone; a richer external calculator can
// replace it behind the same interface.
type Damage struct{}

// Calculate implements DamageCalculator.
func (Damage) Calculate(attacker, defender *battle.Combatant, move *dex.Move, field battle.FieldConditions) Matchup {
	if attacker == nil || defender == nil || !move.Damaging() {
		return Matchup{Summary: "no direct damage"}
	}

	atk := stageMultiplied(attacker.Stats.Atk, attacker.Stages.Atk)
	def := stageMultiplied(defender.Stats.Def, defender.Stages.Def)
	if move.Category == dex.CategorySpecial {
		atk = stageMultiplied(attacker.Stats.SpA, attacker.Stages.SpA)
		def = stageMultiplied(defender.Stats.SpD, defender.Stages.SpD)
	}
	if def < 1 {
		def = 1
	}
	level := attacker.Level
	if level <= 0 {
		level = 100
	}

	base := ((2*level/5+2)*move.BasePower*atk/def)/50 + 2
	min := base * 85 / 100
	if min < 1 {
		min = 1
	}
	if base < 1 {
		base = 1
	}

	m := Matchup{MinDamage: min, MaxDamage: base}
	m.Summary = fmt.Sprintf("%s %s vs. %s: %d-%d damage", attacker.Name, dex.DisplayName(move.Name), defender.Name, min, base)
	switch {
	case min >= defender.CurrentHP:
		m.KOChance = "guaranteed KO"
	case base >= defender.CurrentHP:
		m.KOChance = "possible KO"
	default:
		m.KOChance = "not a KO"
	}
	return m
}
