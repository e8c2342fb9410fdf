package battle

import "time"

// SimulationState is a read-only view of one simulation session. All
// nested values are copies: callers never receive references into
// engine-owned state.
type SimulationState struct {
	BattleID   string             `json:"battle_id"`
	Active     bool               `json:"active"`
	Status     string             `json:"status"`
	Turn       int                `json:"turn"`
	Format     string             `json:"format"`
	Selections map[SideKey]string `json:"selections"`
	Snapshot   *Snapshot          `json:"snapshot,omitempty"`
	Latest     *TurnResult        `json:"latest_result,omitempty"`
	Pending    []PendingDecision  `json:"pending_decisions"`
	History    []TurnRecord       `json:"history"`
	Notes      []string           `json:"notes,omitempty"`
	Errors     []string           `json:"errors,omitempty"`
}

// SimulationSummary is the durable record written when a session ends.
// Live session state itself is never persisted.
type SimulationSummary struct {
	BattleID      string    `json:"battle_id"`
	Format        string    `json:"format"`
	TurnsAdvanced int       `json:"turns_advanced"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}
