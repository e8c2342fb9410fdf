package engine

import (
	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/calc"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// Orchestrator composes order resolution and effect application into one
// full two-action turn.
type Orchestrator struct {
	Order    *OrderResolver
	Pipeline *Pipeline
	Damage   calc.DamageCalculator
	Format   string
}

// NewOrchestrator wires an orchestrator from its collaborators.
func NewOrchestrator(moves dex.MoveSource, stats calc.StatCalculator, damage calc.DamageCalculator, rng Rand, format string) *Orchestrator {
	return &Orchestrator{
		Order:    &OrderResolver{Stats: stats, Moves: moves, RNG: rng},
		Pipeline: NewPipeline(moves),
		Damage:   damage,
		Format:   format,
	}
}

// RunTurn resolves order, applies the first action, and applies the
// second only when the first left both combatants in play. The returned
// snapshot is fully independent of snap; the input is never mutated.
// Pending decisions raised by either application are surfaced on the
// result — blocking on them is the session's responsibility, not this
// function's.
func (o *Orchestrator) RunTurn(snap *battle.Snapshot, a, b battle.ActionSpec) (*battle.Snapshot, battle.TurnResult) {
	decision := o.Order.Resolve(snap, a, b, o.Format)
	result := battle.TurnResult{Order: decision}

	working := snap
	first := o.applyRanked(working, decision.First, 1, &result)
	working = first.Snapshot

	if first.TargetRemoved || first.ActorRemoved {
		// The second action never happens once either combatant is out.
		return working, result
	}

	second := o.applyRanked(working, decision.Second, 2, &result)
	return second.Snapshot, result
}

// applyRanked computes the matchup for one ranked action, applies it, and
// records its MoveOutcome on the result.
func (o *Orchestrator) applyRanked(snap *battle.Snapshot, ranked battle.RankedAction, rank int, result *battle.TurnResult) ApplyResult {
	actorKey := ranked.Action.Side
	targetKey := battle.Opposing(actorKey)

	applied := o.Pipeline.Apply(snap, actorKey, targetKey, ranked.Action.Move, o.Format, o.matchup(snap, ranked.Action))

	outcome := battle.MoveOutcome{
		Side:           actorKey,
		Move:           ranked.Action.Move,
		Rank:           rank,
		Priority:       ranked.Priority,
		EffectiveSpeed: ranked.EffectiveSpeed,
		Damage:         applied.Damage,
		ActorHPDelta:   applied.ActorHPDelta,
		TargetHPDelta:  applied.TargetHPDelta,
		TargetRemoved:  applied.TargetRemoved,
		ActorRemoved:   applied.ActorRemoved,
		Description:    applied.Description,
	}
	if side := snap.Side(actorKey); side != nil {
		if active := side.Active(); active != nil {
			outcome.Actor = active.Name
		}
	}
	result.Outcomes = append(result.Outcomes, outcome)
	result.Pending = append(result.Pending, applied.Pending...)
	result.Errors = append(result.Errors, applied.Errors...)
	return applied
}

// matchup asks the damage calculator for the action's damage range. An
// unresolvable move yields an empty matchup; the pipeline reports the
// lookup failure itself.
func (o *Orchestrator) matchup(snap *battle.Snapshot, spec battle.ActionSpec) calc.Matchup {
	move, err := o.Pipeline.Moves.Move(spec.Move, o.Format)
	if err != nil {
		return calc.Matchup{}
	}
	actorSide := snap.Side(spec.Side)
	targetSide := snap.Side(battle.Opposing(spec.Side))
	if actorSide == nil || targetSide == nil {
		return calc.Matchup{}
	}
	return o.Damage.Calculate(actorSide.Active(), targetSide.Active(), move, snap.Field)
}
