package battle

// DecisionKind tags a pending decision with the kind of external input it
// needs.
type DecisionKind string

const (
	DecisionReplacement DecisionKind = "replacement"
	DecisionChance      DecisionKind = "chance"
	DecisionMultiHit    DecisionKind = "multi_hit"
	DecisionItem        DecisionKind = "item"
	DecisionAbility     DecisionKind = "ability"
)

// PendingDecision is a recorded branch point the engine cannot resolve on
// its own: which replacement enters, whether a percentage-chance effect
// occurs, how many times a multi-hit move connects, or whether an item or
// ability trigger fires. The engine never guesses; it records the need
// and waits for an external answer.
type PendingDecision struct {
	Kind   DecisionKind `json:"kind"`
	Side   SideKey      `json:"side"`
	Prompt string       `json:"prompt"`

	// Kind-specific metadata. Only the fields relevant to Kind are set.
	Candidates []int  `json:"candidates,omitempty"`
	Chance     int    `json:"chance,omitempty"`
	Effect     string `json:"effect,omitempty"`
	MinHits    int    `json:"min_hits,omitempty"`
	MaxHits    int    `json:"max_hits,omitempty"`
	Trigger    string `json:"trigger,omitempty"`
}

// DecisionResolution is the external answer to a pending decision.
type DecisionResolution struct {
	// Choice is a replacement index for replacement decisions, or the hit
	// count for multi-hit decisions.
	Choice int `json:"choice"`
	// Occurred answers chance, item and ability decisions.
	Occurred bool `json:"occurred"`
}
