package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillipDoubleU/showdex/internal/battle"
)

func TestDecisionQueue_FIFO(t *testing.T) {
	var q DecisionQueue
	q.Enqueue(battle.PendingDecision{Kind: battle.DecisionReplacement, Prompt: "first"})
	q.Enqueue(battle.PendingDecision{Kind: battle.DecisionChance, Prompt: "second"})
	q.Enqueue(battle.PendingDecision{Kind: battle.DecisionMultiHit, Prompt: "third"})

	require.Equal(t, 3, q.Len())
	items := q.Items()
	assert.Equal(t, "first", items[0].Prompt)
	assert.Equal(t, "second", items[1].Prompt)
	assert.Equal(t, "third", items[2].Prompt)
}

func TestDecisionQueue_ResolveShiftsRemaining(t *testing.T) {
	var q DecisionQueue
	q.Enqueue(battle.PendingDecision{Prompt: "first"})
	q.Enqueue(battle.PendingDecision{Prompt: "second"})
	q.Enqueue(battle.PendingDecision{Prompt: "third"})

	d, err := q.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, "second", d.Prompt)

	require.Equal(t, 2, q.Len())
	items := q.Items()
	assert.Equal(t, "first", items[0].Prompt)
	assert.Equal(t, "third", items[1].Prompt)
}

func TestDecisionQueue_PushFront(t *testing.T) {
	var q DecisionQueue
	q.Enqueue(battle.PendingDecision{Prompt: "first"})
	q.Enqueue(battle.PendingDecision{Prompt: "second"})

	d, err := q.Resolve(0)
	require.NoError(t, err)
	q.PushFront(d)

	require.Equal(t, 2, q.Len())
	items := q.Items()
	assert.Equal(t, "first", items[0].Prompt)
	assert.Equal(t, "second", items[1].Prompt)
}

func TestDecisionQueue_ResolveOutOfRange(t *testing.T) {
	var q DecisionQueue
	q.Enqueue(battle.PendingDecision{Prompt: "only"})

	_, err := q.Resolve(-1)
	assert.ErrorIs(t, err, ErrDecisionOutOfRange)

	_, err = q.Resolve(1)
	assert.ErrorIs(t, err, ErrDecisionOutOfRange)

	require.Equal(t, 1, q.Len())
}

func TestDecisionQueue_ItemsIsACopy(t *testing.T) {
	var q DecisionQueue
	q.Enqueue(battle.PendingDecision{Prompt: "original"})

	items := q.Items()
	items[0].Prompt = "mutated"

	assert.Equal(t, "original", q.Items()[0].Prompt)
}

func TestDecisionQueue_Clear(t *testing.T) {
	var q DecisionQueue
	q.Enqueue(battle.PendingDecision{Prompt: "a"})
	q.Enqueue(battle.PendingDecision{Prompt: "b"})

	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, q.Items())
}
