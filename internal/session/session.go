// Package session holds the stateful wrapper that chains speculative
// turns: one working snapshot, the move selections pending for the next
// turn, a turn counter, and an append-only history of completed turns.
// Sessions are explicit values owned by the manager; nothing lives in a
// process-wide store and nothing is persisted while a session is live.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/dex"
	"github.com/phillipDoubleU/showdex/internal/engine"
)

var (
	ErrSessionInactive        = errors.New("session is not active")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidSide            = errors.New("invalid side")
	ErrActionsIncomplete      = errors.New("both actions must be selected before executing")
	ErrNotResolved            = errors.New("no resolved turn to advance")
	ErrDecisionsPending       = errors.New("unresolved decisions are pending")
)

// Status is a session's state-machine position.
type Status string

const (
	StatusInactive  Status = "inactive"
	StatusSelecting Status = "selecting"
	StatusReady     Status = "ready"
	StatusResolved  Status = "resolved"
)

// Session is one speculative simulation keyed by a battle identifier. All
// operations run to completion synchronously; the mutex only guards
// against concurrent HTTP callers, not internal parallelism.
type Session struct {
	BattleID string
	Format   string

	mu           sync.Mutex
	status       Status
	snapshot     *battle.Snapshot
	selections   map[battle.SideKey]string
	turn         int
	history      []battle.TurnRecord
	queue        DecisionQueue
	latest       *battle.TurnResult
	notes        []string
	errs         []string
	startedAt    time.Time
	lastActivity time.Time

	orch *engine.Orchestrator
}

// newSession builds an inactive session bound to an orchestrator.
func newSession(battleID, format string, orch *engine.Orchestrator) *Session {
	return &Session{
		BattleID:   battleID,
		Format:     format,
		status:     StatusInactive,
		selections: make(map[battle.SideKey]string, 2),
		orch:       orch,
	}
}

// Start deep-copies the live snapshot as the session's working snapshot
// and enters the selecting state with the turn counter at zero.
func (s *Session) Start(live *battle.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if live == nil || live.Side(battle.SidePlayer) == nil || live.Side(battle.SideOpponent) == nil {
		return fmt.Errorf("%w: snapshot must carry both sides", ErrInvalidStateTransition)
	}
	s.snapshot = live.Clone()
	s.status = StatusSelecting
	s.turn = 0
	s.history = nil
	s.latest = nil
	s.notes = nil
	s.errs = nil
	s.queue.Clear()
	s.selections = make(map[battle.SideKey]string, 2)
	s.startedAt = time.Now()
	s.touch()
	return nil
}

// SelectAction records one side's chosen move for the upcoming turn. It
// is accepted only while selecting or ready; re-selecting overwrites the
// earlier choice for that side.
func (s *Session) SelectAction(side battle.SideKey, move string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusSelecting && s.status != StatusReady {
		return fmt.Errorf("%w: select-action requires an active, unexecuted turn (status %s)", ErrInvalidStateTransition, s.status)
	}
	if !battle.ValidSideKey(side) {
		return fmt.Errorf("%w: %q", ErrInvalidSide, side)
	}
	s.selections[side] = move
	if len(s.selections) == 2 {
		s.status = StatusReady
	}
	s.touch()
	return nil
}

// Execute runs the orchestrated turn. Accepted only when both actions are
// selected. The result and any pending decisions are stored; the session
// enters the resolved state.
func (s *Session) Execute() (*battle.TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.status {
	case StatusReady:
	case StatusSelecting:
		return nil, fmt.Errorf("%w: %w", ErrInvalidStateTransition, ErrActionsIncomplete)
	default:
		return nil, fmt.Errorf("%w: execute requires status %s (have %s)", ErrInvalidStateTransition, StatusReady, s.status)
	}

	a := battle.ActionSpec{Side: battle.SidePlayer, Move: s.selections[battle.SidePlayer]}
	b := battle.ActionSpec{Side: battle.SideOpponent, Move: s.selections[battle.SideOpponent]}

	next, result := s.orch.RunTurn(s.snapshot, a, b)
	s.snapshot = next
	s.latest = &result
	s.errs = append(s.errs, result.Errors...)
	for _, d := range result.Pending {
		s.queue.Enqueue(d)
	}
	s.status = StatusResolved
	s.touch()

	out := result
	return &out, nil
}

// Advance commits the just-resolved turn into history, increments the
// turn counter, clears both selections and returns to selecting. It
// refuses to run while decisions are pending: the simulation is paused
// awaiting external input, as a plain precondition rather than any kind
// of blocking.
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusResolved {
		return fmt.Errorf("%w: %w", ErrInvalidStateTransition, ErrNotResolved)
	}
	if s.queue.Len() > 0 {
		return fmt.Errorf("%w: %w (%d left)", ErrInvalidStateTransition, ErrDecisionsPending, s.queue.Len())
	}

	moves := make(map[battle.SideKey]string, len(s.selections))
	for k, v := range s.selections {
		moves[k] = v
	}
	s.history = append(s.history, battle.TurnRecord{Turn: s.turn, Moves: moves, Result: *s.latest})
	s.turn++
	s.selections = make(map[battle.SideKey]string, 2)
	s.latest = nil
	s.status = StatusSelecting
	s.touch()
	return nil
}

// ResolveDecision answers the pending decision at index. Replacement
// resolutions change the side's active slot; the other kinds record the
// answer as a note on the session.
func (s *Session) ResolveDecision(index int, res battle.DecisionResolution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusInactive {
		return ErrSessionInactive
	}
	d, err := s.queue.Resolve(index)
	if err != nil {
		return err
	}

	switch d.Kind {
	case battle.DecisionReplacement:
		if err := s.applyReplacement(d, res.Choice); err != nil {
			// Put the entry back at the front so the caller can retry.
			s.queue.PushFront(d)
			return err
		}
	case battle.DecisionChance:
		if res.Occurred {
			s.applyChanceEffect(d)
			s.notes = append(s.notes, fmt.Sprintf("turn %d: %s occurred (%d%%)", s.turn, d.Effect, d.Chance))
		} else {
			s.notes = append(s.notes, fmt.Sprintf("turn %d: %s did not occur", s.turn, d.Effect))
		}
	case battle.DecisionMultiHit:
		hits := res.Choice
		if hits < d.MinHits {
			hits = d.MinHits
		}
		if hits > d.MaxHits {
			hits = d.MaxHits
		}
		s.notes = append(s.notes, fmt.Sprintf("turn %d: move hit %d times", s.turn, hits))
	case battle.DecisionItem, battle.DecisionAbility:
		s.notes = append(s.notes, fmt.Sprintf("turn %d: %s trigger resolved (occurred=%t)", s.turn, d.Trigger, res.Occurred))
	}
	s.touch()
	return nil
}

// applyChanceEffect makes a confirmed secondary effect concrete. Any
// recognized status name ("par" or "paralysis" alike) lands on the side
// opposing the move's user; anything else stays a note only.
func (s *Session) applyChanceEffect(d battle.PendingDecision) {
	tag, ok := dex.CanonicalStatus(d.Effect)
	if !ok {
		return
	}
	target := s.snapshot.Side(battle.Opposing(d.Side)).Active()
	if target == nil || target.Status != battle.StatusNone {
		return
	}
	target.Status = battle.StatusCondition(tag)
}

func (s *Session) applyReplacement(d battle.PendingDecision, choice int) error {
	side := s.snapshot.Side(d.Side)
	if side == nil {
		return fmt.Errorf("%w: %q", ErrInvalidSide, d.Side)
	}
	for _, c := range d.Candidates {
		if c == choice {
			side.ActiveIndex = choice
			s.notes = append(s.notes, fmt.Sprintf("turn %d: %s sent out %s", s.turn, d.Side, side.Combatants[choice].Name))
			return nil
		}
	}
	return fmt.Errorf("%w: %d is not a candidate replacement", ErrDecisionOutOfRange, choice)
}

// Reset discards the snapshot, history, selections and queue from any
// active state and returns the session to inactive. It returns the
// summary of what was discarded.
func (s *Session) Reset() battle.SimulationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary := battle.SimulationSummary{
		BattleID:      s.BattleID,
		Format:        s.Format,
		TurnsAdvanced: s.turn,
		StartedAt:     s.startedAt,
		FinishedAt:    time.Now(),
	}
	s.status = StatusInactive
	s.snapshot = nil
	s.selections = make(map[battle.SideKey]string, 2)
	s.turn = 0
	s.history = nil
	s.latest = nil
	s.notes = nil
	s.errs = nil
	s.queue.Clear()
	return summary
}

// PendingCount reports how many decisions remain unresolved.
func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Turn reports the number of turns advanced since start.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Snapshot returns an independent copy of the working snapshot, or nil
// when the session is inactive.
func (s *Session) Snapshot() *battle.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// LatestResult returns a copy of the most recent turn result, or nil.
func (s *Session) LatestResult() *battle.TurnResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return nil
	}
	cp := *s.latest
	return &cp
}

// State builds the full read-only view of the session. Every nested value
// is a copy.
func (s *Session) State() battle.SimulationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := battle.SimulationState{
		BattleID:   s.BattleID,
		Active:     s.status != StatusInactive,
		Status:     string(s.status),
		Turn:       s.turn,
		Format:     s.Format,
		Selections: make(map[battle.SideKey]string, len(s.selections)),
		Snapshot:   s.snapshot.Clone(),
		Pending:    s.queue.Items(),
		History:    append([]battle.TurnRecord(nil), s.history...),
		Notes:      append([]string(nil), s.notes...),
		Errors:     append([]string(nil), s.errs...),
	}
	for k, v := range s.selections {
		st.Selections[k] = v
	}
	if s.latest != nil {
		cp := *s.latest
		st.Latest = &cp
	}
	return st
}

func (s *Session) touch() { s.lastActivity = time.Now() }

// idleSince reports the last operation time; the manager's sweeper uses
// it to expire abandoned sessions.
func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}
