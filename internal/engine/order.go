package engine

import (
	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/calc"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// OrderResolver decides which of two actions executes first. It is a pure
// function of its inputs modulo the injected random source.
type OrderResolver struct {
	Stats calc.StatCalculator
	Moves dex.MoveSource
	RNG   Rand
}

// Resolve orders the two actions. Priority brackets win outright; on a
// priority tie the higher effective speed acts first unless the field's
// speed-reversal condition is active, in which case the lower speed acts
// first; a full tie is broken uniformly at random. Effective speeds are
// recorded even when priority alone decided, for diagnostics.
func (r *OrderResolver) Resolve(snap *battle.Snapshot, a, b battle.ActionSpec, format string) battle.OrderDecision {
	ra := r.rank(snap, a, format)
	rb := r.rank(snap, b, format)

	switch {
	case ra.Priority != rb.Priority:
		if ra.Priority > rb.Priority {
			return battle.OrderDecision{First: ra, Second: rb, Reason: battle.OrderByPriority}
		}
		return battle.OrderDecision{First: rb, Second: ra, Reason: battle.OrderByPriority}

	case ra.EffectiveSpeed != rb.EffectiveSpeed:
		fast, slow := ra, rb
		if rb.EffectiveSpeed > ra.EffectiveSpeed {
			fast, slow = rb, ra
		}
		if snap != nil && snap.Field.TrickRoom {
			return battle.OrderDecision{First: slow, Second: fast, Reason: battle.OrderByReversed}
		}
		return battle.OrderDecision{First: fast, Second: slow, Reason: battle.OrderBySpeed}

	default:
		if r.RNG.Intn(2) == 0 {
			return battle.OrderDecision{First: ra, Second: rb, Reason: battle.OrderByRandom}
		}
		return battle.OrderDecision{First: rb, Second: ra, Reason: battle.OrderByRandom}
	}
}

// rank computes the priority bracket and effective speed for one action.
// A move that cannot be resolved against the dex ranks at priority 0;
// missing metadata is a policy default here, not a failure.
func (r *OrderResolver) rank(snap *battle.Snapshot, spec battle.ActionSpec, format string) battle.RankedAction {
	ranked := battle.RankedAction{Action: spec}
	if m, err := r.Moves.Move(spec.Move, format); err == nil {
		ranked.Priority = m.Priority
	}
	if snap != nil {
		if side := snap.Side(spec.Side); side != nil {
			if active := side.Active(); active != nil {
				ranked.EffectiveSpeed = r.Stats.EffectiveSpeed(active, snap.Field)
			}
		}
	}
	return ranked
}
