package engine

import (
	"fmt"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/dex"
)

// runDamage applies the midpoint of the supplied damage range, floored
// and clamped to zero HP. A target brought to zero faints and is removed
// from play, which short-circuits the target-directed stages.
func (px *applyContext) runDamage() {
	if !px.move.Damaging() {
		return
	}
	dmg := px.matchup.Midpoint()
	if dmg <= 0 {
		px.add("it had no effect")
		return
	}
	if dmg > px.target.CurrentHP {
		dmg = px.target.CurrentHP
	}
	px.target.CurrentHP -= dmg
	px.damageDealt = dmg
	px.targetHPDelta = -dmg
	px.add(fmt.Sprintf("%s took %d damage (%d/%d HP left)", px.target.Name, dmg, px.target.CurrentHP, px.target.MaxHP))

	if px.target.CurrentHP == 0 {
		px.target.Fainted = true
		px.targetRemoved = true
		px.add(fmt.Sprintf("%s fainted", px.target.Name))
		px.raiseReplacement(px.targetKey, px.target.Name)
	}
}

// runRecoil applies declared recoil as max(1, floor(damage * fraction)).
// Recoil depends only on damage already dealt, so it still runs when the
// target has been removed by the primary hit.
func (px *applyContext) runRecoil() {
	if px.move.Recoil == nil || px.damageDealt <= 0 {
		return
	}
	recoil := px.move.Recoil.Of(px.damageDealt)
	if recoil > px.actor.CurrentHP {
		recoil = px.actor.CurrentHP
	}
	px.actor.CurrentHP -= recoil
	px.actorHPDelta -= recoil
	px.add(fmt.Sprintf("%s took %d recoil damage", px.actor.Name, recoil))

	if px.actor.CurrentHP == 0 {
		px.actor.Fainted = true
		px.actorRemoved = true
		px.add(fmt.Sprintf("%s fainted from recoil", px.actor.Name))
		px.raiseReplacement(px.actorKey, px.actor.Name)
	}
}

// runDrain heals the actor by max(1, floor(damage * fraction)), clamped
// to its maximum HP.
func (px *applyContext) runDrain() {
	if px.move.Drain == nil || px.damageDealt <= 0 {
		return
	}
	heal := px.move.Drain.Of(px.damageDealt)
	if px.actor.CurrentHP+heal > px.actor.MaxHP {
		heal = px.actor.MaxHP - px.actor.CurrentHP
	}
	if heal <= 0 {
		return
	}
	px.actor.CurrentHP += heal
	px.actorHPDelta += heal
	px.add(fmt.Sprintf("%s drained %d HP (%d/%d HP)", px.actor.Name, heal, px.actor.CurrentHP, px.actor.MaxHP))
}

// runStatStage applies declared stat-stage deltas to the actor or the
// target, clamped to the conventional -6..+6 band.
func (px *applyContext) runStatStage() {
	deltas := px.move.StatChange
	if deltas.Empty() {
		return
	}
	who := px.target
	if deltas.SelfTarget {
		who = px.actor
	} else if px.targetRemoved {
		return
	}
	who.Stages.Atk = clampStage(who.Stages.Atk + deltas.Atk)
	who.Stages.Def = clampStage(who.Stages.Def + deltas.Def)
	who.Stages.SpA = clampStage(who.Stages.SpA + deltas.SpA)
	who.Stages.SpD = clampStage(who.Stages.SpD + deltas.SpD)
	who.Stages.Spe = clampStage(who.Stages.Spe + deltas.Spe)
	px.add(fmt.Sprintf("%s's stat stages changed", who.Name))
}

func clampStage(v int) int {
	if v > 6 {
		return 6
	}
	if v < -6 {
		return -6
	}
	return v
}

// runStatus inflicts the declared status when the target has none.
func (px *applyContext) runStatus() {
	if px.move.Status == "" {
		return
	}
	if px.target.Status != battle.StatusNone {
		px.add(fmt.Sprintf("%s already has a status condition", px.target.Name))
		return
	}
	px.target.Status = battle.StatusCondition(px.move.Status)
	px.add(fmt.Sprintf("%s was afflicted with %s", px.target.Name, px.move.Status))
}

// runField applies a declared field-condition payload.
func (px *applyContext) runField() {
	fp := px.move.Field
	if fp == nil {
		return
	}
	if fp.Weather != "" {
		px.snap.Field.Weather = fp.Weather
		px.add(fmt.Sprintf("the weather became %s", fp.Weather))
	}
	if fp.Terrain != "" {
		px.snap.Field.Terrain = fp.Terrain
		px.add(fmt.Sprintf("the terrain became %s", fp.Terrain))
	}
	if fp.TrickRoom {
		px.snap.Field.TrickRoom = !px.snap.Field.TrickRoom
		if px.snap.Field.TrickRoom {
			px.add("the dimensions were twisted")
		} else {
			px.add("the twisted dimensions returned to normal")
		}
	}
}

// runSelfSwitch raises a replacement decision for a move that forces its
// own user out. The engine does not pick the replacement.
func (px *applyContext) runSelfSwitch() {
	if !px.move.SelfSwitch || px.actorRemoved {
		return
	}
	side := px.snap.Side(px.actorKey)
	candidates := side.ReserveIndexes()
	if len(candidates) == 0 {
		return
	}
	px.pending = append(px.pending, battle.PendingDecision{
		Kind:       battle.DecisionReplacement,
		Side:       px.actorKey,
		Prompt:     fmt.Sprintf("%s is switching out: choose a replacement", px.actor.Name),
		Candidates: candidates,
	})
	px.add(fmt.Sprintf("%s will switch out", px.actor.Name))
}

// runSecondary records a percentage-chance secondary effect as a pending
// decision. Whether the effect occurs is external input, never a guess.
func (px *applyContext) runSecondary() {
	sec := px.move.Secondary
	if sec == nil {
		return
	}
	px.pending = append(px.pending, battle.PendingDecision{
		Kind:   battle.DecisionChance,
		Side:   px.actorKey,
		Prompt: fmt.Sprintf("does the %d%% chance of %s occur?", sec.Chance, sec.Effect),
		Chance: sec.Chance,
		Effect: sec.Effect,
	})
}

// runMultiHit records the hit-count selection for a multi-hit move.
func (px *applyContext) runMultiHit() {
	hr := px.move.MultiHit
	if hr == nil {
		return
	}
	px.pending = append(px.pending, battle.PendingDecision{
		Kind:    battle.DecisionMultiHit,
		Side:    px.actorKey,
		Prompt:  fmt.Sprintf("how many times does %s hit (%d-%d)?", dex.DisplayName(px.move.Name), hr.Min, hr.Max),
		MinHits: hr.Min,
		MaxHits: hr.Max,
	})
}

// raiseReplacement queues a replacement decision when the fainted side
// still has eligible reserves.
func (px *applyContext) raiseReplacement(key battle.SideKey, fainted string) {
	side := px.snap.Side(key)
	candidates := side.ReserveIndexes()
	if len(candidates) == 0 {
		return
	}
	px.pending = append(px.pending, battle.PendingDecision{
		Kind:       battle.DecisionReplacement,
		Side:       key,
		Prompt:     fmt.Sprintf("%s fainted: choose a replacement", fainted),
		Candidates: candidates,
	})
}
