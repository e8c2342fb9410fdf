// Package dex models move metadata and the provider the engine consumes
// to resolve a move name into its mechanical payload. Every payload field
// is optional: absence always means "no effect", never an error.
package dex

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownMove is returned when a move name cannot be resolved against
// the loaded metadata.
var ErrUnknownMove = errors.New("unknown move")

// Category describes how a move deals damage, if at all.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategorySpecial  Category = "special"
	CategoryStatus   Category = "status"
)

// Fraction is a recoil or drain fraction expressed as numerator over
// denominator (e.g. 1/3 recoil).
type Fraction struct {
	Numerator   int `json:"numerator"`
	Denominator int `json:"denominator"`
}

// Of returns max(1, floor(amount * n/d)). Zero-valued fractions yield 0.
func (f Fraction) Of(amount int) int {
	if f.Numerator <= 0 || f.Denominator <= 0 || amount <= 0 {
		return 0
	}
	v := amount * f.Numerator / f.Denominator
	if v < 1 {
		v = 1
	}
	return v
}

// StatDeltas are stage changes a move applies, to the actor itself when
// SelfTarget is set, otherwise to the target.
type StatDeltas struct {
	Atk        int  `json:"atk"`
	Def        int  `json:"def"`
	SpA        int  `json:"spa"`
	SpD        int  `json:"spd"`
	Spe        int  `json:"spe"`
	SelfTarget bool `json:"self_target"`
}

// Empty reports whether no stage change is declared.
func (d *StatDeltas) Empty() bool {
	return d == nil || (d.Atk == 0 && d.Def == 0 && d.SpA == 0 && d.SpD == 0 && d.Spe == 0)
}

// FieldPayload describes field-condition changes a move carries.
// TrickRoom toggles the speed-reversal condition rather than setting it,
// matching how the move behaves when used while already up.
type FieldPayload struct {
	Weather   string `json:"weather,omitempty"`
	Terrain   string `json:"terrain,omitempty"`
	TrickRoom bool   `json:"trick_room,omitempty"`
}

// Secondary is a percentage-chance secondary effect. The engine never
// rolls the chance itself; it raises a pending decision instead.
type Secondary struct {
	Chance int    `json:"chance"`
	Effect string `json:"effect"`
}

// HitRange is a multi-hit move's possible hit count.
type HitRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Move is the full metadata payload for one move in one format.
type Move struct {
	Name       string        `json:"name"`
	Format     string        `json:"format"`
	Type       string        `json:"type"`
	Category   Category      `json:"category"`
	BasePower  int           `json:"base_power"`
	Priority   int           `json:"priority"`
	Recoil     *Fraction     `json:"recoil,omitempty"`
	Drain      *Fraction     `json:"drain,omitempty"`
	StatChange *StatDeltas   `json:"stat_change,omitempty"`
	Status     string        `json:"status,omitempty"`
	Field      *FieldPayload `json:"field,omitempty"`
	SelfSwitch bool          `json:"self_switch,omitempty"`
	Secondary  *Secondary    `json:"secondary,omitempty"`
	MultiHit   *HitRange     `json:"multi_hit,omitempty"`
}

// Damaging reports whether the move deals direct damage.
func (m *Move) Damaging() bool {
	return m != nil && m.Category != CategoryStatus && m.BasePower > 0
}

// MoveSource resolves a move name within a format. Implementations must
// return ErrUnknownMove (possibly wrapped) for unresolvable names.
type MoveSource interface {
	Move(name, format string) (*Move, error)
}

// CanonicalName reduces a move name to the canonical lookup key: lower
// case, alphanumeric only ("Double-Edge" -> "doubleedge").
func CanonicalName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// statusTags maps accepted status spellings to their canonical short
// tags. Long names are what dex data files tend to use; the engine and
// session layers only speak tags.
var statusTags = map[string]string{
	"brn": "brn", "burn": "brn",
	"par": "par", "paralysis": "par",
	"psn": "psn", "poison": "psn",
	"tox": "tox", "toxic": "tox",
	"slp": "slp", "sleep": "slp",
	"frz": "frz", "freeze": "frz",
}

// CanonicalStatus resolves a status name to its short tag ("paralysis"
// -> "par"). The second return reports whether the name is recognized.
func CanonicalStatus(name string) (string, bool) {
	tag, ok := statusTags[strings.ToLower(strings.TrimSpace(name))]
	return tag, ok
}

var titleCaser = cases.Title(language.English)

// DisplayName renders a move name for human-readable output.
func DisplayName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}
