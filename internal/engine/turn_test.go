package engine

import (
	"testing"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/calc"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// fixedDamage maps move name to a fixed matchup, so turn tests are not
// coupled to the damage formula.
type fixedDamage map[string]calc.Matchup

func (d fixedDamage) Calculate(attacker, defender *battle.Combatant, move *dex.Move, field battle.FieldConditions) calc.Matchup {
	return d[move.Name]
}

func newTestOrchestrator(damage calc.DamageCalculator, seed int64) *Orchestrator {
	return NewOrchestrator(testMoves(), calc.Stats{}, damage, NewRand(seed), testFormat)
}

func TestRunTurn_BothActionsApply(t *testing.T) {
	o := newTestOrchestrator(fixedDamage{"Tackle": {MinDamage: 40, MaxDamage: 40}}, 1)
	snap := pipelineSnapshot(200, 200)

	next, result := o.RunTurn(snap,
		battle.ActionSpec{Side: battle.SidePlayer, Move: "Tackle"},
		battle.ActionSpec{Side: battle.SideOpponent, Move: "Tackle"})

	if len(result.Outcomes) != 2 {
		t.Fatalf("expected two outcomes, got %d", len(result.Outcomes))
	}
	if result.Outcomes[0].Rank != 1 || result.Outcomes[1].Rank != 2 {
		t.Fatalf("outcome ranks must be 1 then 2")
	}
	// Player is faster (100 vs 90) so it acts first.
	if result.Order.Reason != battle.OrderBySpeed || result.Outcomes[0].Side != battle.SidePlayer {
		t.Fatalf("expected player to act first by speed, got %+v", result.Order)
	}
	if got := next.Side(battle.SideOpponent).Combatants[0].CurrentHP; got != 160 {
		t.Fatalf("expected opponent at 160 HP, got %d", got)
	}
	if got := next.Side(battle.SidePlayer).Combatants[0].CurrentHP; got != 160 {
		t.Fatalf("expected player at 160 HP, got %d", got)
	}
}

func TestRunTurn_FaintShortCircuitsSecondAction(t *testing.T) {
	o := newTestOrchestrator(fixedDamage{"Tackle": {MinDamage: 250, MaxDamage: 250}}, 1)
	snap := pipelineSnapshot(200, 200)

	next, result := o.RunTurn(snap,
		battle.ActionSpec{Side: battle.SidePlayer, Move: "Tackle"},
		battle.ActionSpec{Side: battle.SideOpponent, Move: "Tackle"})

	if len(result.Outcomes) != 1 {
		t.Fatalf("expected one outcome after a faint, got %d", len(result.Outcomes))
	}
	if !result.Outcomes[0].TargetRemoved {
		t.Fatalf("first outcome should have removed the target")
	}
	// The fainted opponent never acted, so the player is untouched.
	if got := next.Side(battle.SidePlayer).Combatants[0].CurrentHP; got != 200 {
		t.Fatalf("player must be untouched, got %d HP", got)
	}
}

func TestRunTurn_ActorRecoilFaintShortCircuits(t *testing.T) {
	o := newTestOrchestrator(fixedDamage{
		"Brave Bird": {MinDamage: 90, MaxDamage: 90},
		"Tackle":     {MinDamage: 40, MaxDamage: 40},
	}, 1)
	snap := pipelineSnapshot(20, 200)

	_, result := o.RunTurn(snap,
		battle.ActionSpec{Side: battle.SidePlayer, Move: "Brave Bird"},
		battle.ActionSpec{Side: battle.SideOpponent, Move: "Tackle"})

	if len(result.Outcomes) != 1 {
		t.Fatalf("expected one outcome when the first actor faints, got %d", len(result.Outcomes))
	}
	if !result.Outcomes[0].ActorRemoved {
		t.Fatalf("first outcome should have removed the actor via recoil")
	}
}

func TestRunTurn_InputUnmutated(t *testing.T) {
	o := newTestOrchestrator(fixedDamage{"Tackle": {MinDamage: 40, MaxDamage: 40}}, 1)
	snap := pipelineSnapshot(200, 200)

	next, _ := o.RunTurn(snap,
		battle.ActionSpec{Side: battle.SidePlayer, Move: "Tackle"},
		battle.ActionSpec{Side: battle.SideOpponent, Move: "Tackle"})

	if next == snap {
		t.Fatalf("returned snapshot must be independent of the input")
	}
	if got := snap.Side(battle.SidePlayer).Combatants[0].CurrentHP; got != 200 {
		t.Fatalf("input snapshot was mutated: player at %d HP", got)
	}
	if got := snap.Side(battle.SideOpponent).Combatants[0].CurrentHP; got != 200 {
		t.Fatalf("input snapshot was mutated: opponent at %d HP", got)
	}
}

func TestRunTurn_PendingSurfacedNotResolved(t *testing.T) {
	o := newTestOrchestrator(fixedDamage{
		"Thunderbolt": {MinDamage: 50, MaxDamage: 50},
		"Tackle":      {MinDamage: 40, MaxDamage: 40},
	}, 1)
	snap := pipelineSnapshot(200, 200)

	_, result := o.RunTurn(snap,
		battle.ActionSpec{Side: battle.SidePlayer, Move: "Thunderbolt"},
		battle.ActionSpec{Side: battle.SideOpponent, Move: "Tackle"})

	if len(result.Outcomes) != 2 {
		t.Fatalf("pending decisions must not block the turn, got %d outcomes", len(result.Outcomes))
	}
	if len(result.Pending) != 1 || result.Pending[0].Kind != battle.DecisionChance {
		t.Fatalf("expected one chance decision, got %+v", result.Pending)
	}
}

func TestRunTurn_UnknownMoveRecordedAsError(t *testing.T) {
	o := newTestOrchestrator(fixedDamage{"Tackle": {MinDamage: 40, MaxDamage: 40}}, 1)
	snap := pipelineSnapshot(200, 200)

	next, result := o.RunTurn(snap,
		battle.ActionSpec{Side: battle.SidePlayer, Move: "No Such Move"},
		battle.ActionSpec{Side: battle.SideOpponent, Move: "Tackle"})

	if len(result.Errors) == 0 {
		t.Fatalf("expected the unknown move to surface as an error")
	}
	// The opponent's valid action still applies.
	if got := next.Side(battle.SidePlayer).Combatants[0].CurrentHP; got != 160 {
		t.Fatalf("expected the valid action to land, player at %d HP", got)
	}
}
