package session

import (
	"errors"

	"github.com/phillipDoubleU/showdex/internal/battle"
)

// ErrDecisionOutOfRange is returned when a resolution index does not name
// a queued decision.
var ErrDecisionOutOfRange = errors.New("decision index out of range")

// DecisionQueue is a FIFO of unresolved branch points. While it is
// non-empty the owning session refuses to advance; resolving entries is
// the only way metadata-dependent stages become concrete.
type DecisionQueue struct {
	items []battle.PendingDecision
}

// Enqueue appends a decision.
func (q *DecisionQueue) Enqueue(d battle.PendingDecision) {
	q.items = append(q.items, d)
}

// PushFront reinserts a decision at the head of the queue, ahead of
// everything already waiting. Used to requeue a decision whose
// resolution was rejected.
func (q *DecisionQueue) PushFront(d battle.PendingDecision) {
	q.items = append([]battle.PendingDecision{d}, q.items...)
}

// Len reports the number of unresolved decisions.
func (q *DecisionQueue) Len() int { return len(q.items) }

// Items returns a copy of the queued decisions in FIFO order.
func (q *DecisionQueue) Items() []battle.PendingDecision {
	return append([]battle.PendingDecision(nil), q.items...)
}

// Resolve removes and returns the decision at index, shifting subsequent
// entries down.
func (q *DecisionQueue) Resolve(index int) (battle.PendingDecision, error) {
	if index < 0 || index >= len(q.items) {
		return battle.PendingDecision{}, ErrDecisionOutOfRange
	}
	d := q.items[index]
	q.items = append(q.items[:index], q.items[index+1:]...)
	return d, nil
}

// Clear drops every queued decision.
func (q *DecisionQueue) Clear() { q.items = nil }
