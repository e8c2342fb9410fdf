package engine

import (
	"fmt"
	"strings"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/calc"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// EffectKind tags one stage of the effect pipeline.
type EffectKind string

const (
	EffectDamage     EffectKind = "damage"
	EffectRecoil     EffectKind = "recoil"
	EffectDrain      EffectKind = "drain"
	EffectStatStage  EffectKind = "stat_stage"
	EffectStatus     EffectKind = "status"
	EffectField      EffectKind = "field"
	EffectSelfSwitch EffectKind = "self_switch"
	EffectSecondary  EffectKind = "secondary"
	EffectMultiHit   EffectKind = "multi_hit"
)

// stage is one handler in the fixed pipeline order. Stages marked
// targetDirected are skipped once the target has been removed from play;
// the remainder (recoil, drain, field, self-switch) still run because
// they act on the actor or the field.
type stage struct {
	kind           EffectKind
	targetDirected bool
	run            func(px *applyContext)
}

// ApplyResult is the outcome of applying one action to a snapshot.
type ApplyResult struct {
	Snapshot      *battle.Snapshot
	Damage        int
	ActorHPDelta  int
	TargetHPDelta int
	TargetRemoved bool
	ActorRemoved  bool
	Description   string
	Pending       []battle.PendingDecision
	Errors        []string
}

// Pipeline applies one resolved action to a battle snapshot through an
// ordered list of stage handlers. Handlers are independently addable:
// extending the pipeline means appending a stage, not changing the
// dispatch contract.
type Pipeline struct {
	Moves  dex.MoveSource
	stages []stage
}

// NewPipeline builds the pipeline with the baseline stage order.
func NewPipeline(moves dex.MoveSource) *Pipeline {
	return &Pipeline{
		Moves: moves,
		stages: []stage{
			{EffectDamage, false, (*applyContext).runDamage},
			{EffectRecoil, false, (*applyContext).runRecoil},
			{EffectDrain, false, (*applyContext).runDrain},
			{EffectStatStage, false, (*applyContext).runStatStage},
			{EffectStatus, true, (*applyContext).runStatus},
			{EffectField, false, (*applyContext).runField},
			{EffectSelfSwitch, false, (*applyContext).runSelfSwitch},
			{EffectSecondary, true, (*applyContext).runSecondary},
			{EffectMultiHit, true, (*applyContext).runMultiHit},
		},
	}
}

// applyContext carries one application's working state through the
// stages. actor and target point into the cloned snapshot, never into
// the caller's input.
type applyContext struct {
	snap      *battle.Snapshot
	actorKey  battle.SideKey
	targetKey battle.SideKey
	actor     *battle.Combatant
	target    *battle.Combatant
	move      *dex.Move
	matchup   calc.Matchup

	damageDealt   int
	actorHPDelta  int
	targetHPDelta int
	targetRemoved bool
	actorRemoved  bool

	clauses []string
	pending []battle.PendingDecision
}

func (px *applyContext) add(msg string) { px.clauses = append(px.clauses, msg) }

// Apply runs the pipeline for one action. It never mutates snap: all
// mutation happens on a fresh deep copy, which is returned even on
// failure so callers always receive a usable best-effort result. Failures
// are recorded in Errors, never thrown.
func (p *Pipeline) Apply(snap *battle.Snapshot, actorKey, targetKey battle.SideKey, moveName, format string, matchup calc.Matchup) ApplyResult {
	res := ApplyResult{Snapshot: snap.Clone()}

	if !battle.ValidSideKey(actorKey) || res.Snapshot.Side(actorKey) == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%v: %q", ErrInvalidSideReference, actorKey))
	}
	if !battle.ValidSideKey(targetKey) || res.Snapshot.Side(targetKey) == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%v: %q", ErrInvalidSideReference, targetKey))
	}
	if len(res.Errors) > 0 {
		return res
	}

	actor := res.Snapshot.Side(actorKey).Active()
	target := res.Snapshot.Side(targetKey).Active()
	if actor == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%v: side %q", ErrNoActiveCombatant, actorKey))
	}
	if target == nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%v: side %q", ErrNoActiveCombatant, targetKey))
	}
	if len(res.Errors) > 0 {
		return res
	}

	move, err := p.Moves.Move(moveName, format)
	if err != nil {
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	px := &applyContext{
		snap:      res.Snapshot,
		actorKey:  actorKey,
		targetKey: targetKey,
		actor:     actor,
		target:    target,
		move:      move,
		matchup:   matchup,
	}
	px.add(fmt.Sprintf("%s used %s", actor.Name, dex.DisplayName(move.Name)))

	for _, st := range p.stages {
		if px.actorRemoved {
			// Nothing runs after the actor removes itself (e.g. recoil).
			break
		}
		if px.targetRemoved && st.targetDirected {
			continue
		}
		st.run(px)
	}

	res.Damage = px.damageDealt
	res.ActorHPDelta = px.actorHPDelta
	res.TargetHPDelta = px.targetHPDelta
	res.TargetRemoved = px.targetRemoved
	res.ActorRemoved = px.actorRemoved
	res.Description = strings.Join(px.clauses, "; ")
	res.Pending = px.pending
	return res
}
