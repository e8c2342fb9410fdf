package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phillipDoubleU/showdex/internal/battle"
)

func newHubClient() *streamClient {
	return &streamClient{send: make(chan battle.SimulationState, 8)}
}

func TestStreamHub_AddDeliversInitialState(t *testing.T) {
	hub := NewStreamHub()
	cl := newHubClient()

	hub.add("battle-1", cl, battle.SimulationState{BattleID: "battle-1", Status: "selecting"})

	select {
	case got := <-cl.send:
		assert.Equal(t, "battle-1", got.BattleID)
		assert.Equal(t, "selecting", got.Status)
	default:
		t.Fatalf("initial state was not queued")
	}
}

func TestStreamHub_BroadcastReachesSubscribers(t *testing.T) {
	hub := NewStreamHub()
	one := newHubClient()
	two := newHubClient()
	hub.add("battle-1", one, battle.SimulationState{})
	hub.add("battle-1", two, battle.SimulationState{})
	<-one.send
	<-two.send

	hub.Broadcast("battle-1", battle.SimulationState{Turn: 3})

	assert.Equal(t, 3, (<-one.send).Turn)
	assert.Equal(t, 3, (<-two.send).Turn)
}

func TestStreamHub_CloseThenAddDoesNotPanic(t *testing.T) {
	hub := NewStreamHub()
	cl := newHubClient()
	hub.add("battle-1", cl, battle.SimulationState{})
	hub.Close("battle-1")

	// The client's channel was closed exactly once and the client removed.
	_, open := <-cl.send // drain the queued initial state
	require.True(t, open)
	_, open = <-cl.send
	require.False(t, open)

	// A subscriber arriving after the battle was discarded gets its own
	// fresh registration; registration and initial delivery share one
	// critical section, so Close can never slip between them.
	late := newHubClient()
	hub.add("battle-1", late, battle.SimulationState{Status: "selecting"})
	hub.Close("battle-1")
	got, open := <-late.send
	require.True(t, open)
	assert.Equal(t, "selecting", got.Status)
}

func TestStreamHub_SlowSubscriberDropped(t *testing.T) {
	hub := NewStreamHub()
	cl := &streamClient{send: make(chan battle.SimulationState, 1)}
	hub.add("battle-1", cl, battle.SimulationState{})

	// The buffer is full, so the next broadcast drops the client instead
	// of blocking.
	hub.Broadcast("battle-1", battle.SimulationState{Turn: 1})

	_, open := <-cl.send
	require.True(t, open)
	_, open = <-cl.send
	require.False(t, open, "slow subscriber must be dropped and its channel closed")
}

func TestStreamHub_RemoveIsIdempotent(t *testing.T) {
	hub := NewStreamHub()
	cl := newHubClient()
	hub.add("battle-1", cl, battle.SimulationState{})

	hub.remove("battle-1", cl)
	hub.remove("battle-1", cl)
	hub.Close("battle-1")
}
