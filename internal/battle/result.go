package battle

// OrderReason is the tie-break rule that determined execution order.
type OrderReason string

const (
	OrderByPriority OrderReason = "priority"
	OrderBySpeed    OrderReason = "speed"
	OrderByReversed OrderReason = "reversed-field"
	OrderByRandom   OrderReason = "random"
)

// RankedAction is one action plus the priority and effective speed used to
// place it. Speeds are recorded even when priority alone decided the
// order, for diagnostics.
type RankedAction struct {
	Action         ActionSpec `json:"action"`
	Priority       int        `json:"priority"`
	EffectiveSpeed int        `json:"effective_speed"`
}

// OrderDecision records which action executes first and why.
type OrderDecision struct {
	First  RankedAction `json:"first"`
	Second RankedAction `json:"second"`
	Reason OrderReason  `json:"reason"`
}

// MoveOutcome is the immutable record of one resolved action.
type MoveOutcome struct {
	Side           SideKey `json:"side"`
	Actor          string  `json:"actor"`
	Move           string  `json:"move"`
	Rank           int     `json:"rank"`
	Priority       int     `json:"priority"`
	EffectiveSpeed int     `json:"effective_speed"`
	Damage         int     `json:"damage"`
	ActorHPDelta   int     `json:"actor_hp_delta"`
	TargetHPDelta  int     `json:"target_hp_delta"`
	TargetRemoved  bool    `json:"target_removed"`
	ActorRemoved   bool    `json:"actor_removed"`
	Description    string  `json:"description"`
}

// TurnResult is the ordered outcome of one orchestrated turn: one or two
// MoveOutcomes plus any faults and decisions raised along the way.
type TurnResult struct {
	Order    OrderDecision     `json:"order"`
	Outcomes []MoveOutcome     `json:"outcomes"`
	Pending  []PendingDecision `json:"pending"`
	Errors   []string          `json:"errors"`
}

// TurnRecord is one completed turn in a session's append-only history.
type TurnRecord struct {
	Turn   int                `json:"turn"`
	Moves  map[SideKey]string `json:"moves"`
	Result TurnResult         `json:"result"`
}
