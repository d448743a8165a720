// Package combat implements the engagement math, result application, and
// dispatch loop for village-vs-village attacks. Grounded line-by-line on
// original_source/app/game/combat.py's AttackResolver: the round-based
// melee/ranged split, the `(weaker/stronger)^1.5` loss coefficient, and the
// loot/loyalty/conquest effects it applies once an engagement concludes.
package combat

import (
	"math"

	"villagecore/internal/catalog"
	"villagecore/internal/domain"
)

// Result is the outcome of one Simulate call: survivors and losses on both
// sides, plus the luck draw that produced them.
type Result struct {
	AttackerWon bool
	Attackers   domain.Units // survivors
	AttackerLost domain.Units
	Defenders   domain.Units // survivors
	DefenderLost domain.Units
	Luck        float64
}

// resolveRound resolves one melee-or-ranged sub-engagement, returning the
// attacker and defender loss ratios for that category.
func resolveRound(attack, defense float64) (attackerLoss, defenderLoss float64) {
	if attack <= 0 {
		return 0, 0
	}
	switch {
	case attack > defense:
		attackerLoss = (defense / attack) * math.Sqrt(defense/attack)
		defenderLoss = 1.0
	case defense > attack:
		defenderLoss = (attack / defense) * math.Sqrt(attack/defense)
		attackerLoss = 1.0
	default:
		attackerLoss = 1.0
		defenderLoss = 1.0
	}
	return attackerLoss, defenderLoss
}

type defenseSplit struct {
	melee, ranged float64
}

// Simulate runs the round-based engagement to exhaustion. Pure: it never
// touches a store, a movement, or a village beyond the unit counts handed
// in. luck must be drawn by the caller (the Resolver's injected RNG) so
// tests can pin it.
func Simulate(attacking, defending domain.Units, luck float64) Result {
	atk := attacking.Clone()
	def := defending.Clone()

	attackerAlive := atk.Total() > 0
	defenderAlive := def.Total() > 0

	for attackerAlive && defenderAlive {
		var meleeAttack, rangedAttack float64
		for _, k := range catalog.CombatUnits() {
			count := atk.Count(k)
			if count <= 0 {
				continue
			}
			spec := catalog.Unit(k)
			switch spec.Category {
			case catalog.Melee:
				meleeAttack += float64(count) * spec.Attack
			case catalog.Ranged:
				rangedAttack += float64(count) * spec.Attack
			}
		}
		meleeAttack *= 1 + luck
		rangedAttack *= 1 + luck

		totalAttack := meleeAttack + rangedAttack
		if totalAttack <= 0 {
			attackerAlive = false
			break
		}

		meleePct := meleeAttack / totalAttack
		rangedPct := rangedAttack / totalAttack

		var meleeDefense, rangedDefense float64
		splits := make(map[catalog.UnitKind]defenseSplit, len(catalog.CombatUnits()))
		for _, k := range catalog.CombatUnits() {
			count := def.Count(k)
			if count <= 0 {
				continue
			}
			spec := catalog.Unit(k)
			meleeUnits := float64(count) * meleePct
			rangedUnits := float64(count) * rangedPct
			meleeDefense += meleeUnits * spec.DefMelee
			rangedDefense += rangedUnits * spec.DefRanged
			splits[k] = defenseSplit{melee: meleeUnits, ranged: rangedUnits}
		}

		meleeLossAtk, meleeLossDef := resolveRound(meleeAttack, meleeDefense)
		rangedLossAtk, rangedLossDef := resolveRound(rangedAttack, rangedDefense)

		for _, k := range catalog.CombatUnits() {
			count := atk.Count(k)
			if count <= 0 {
				continue
			}
			spec := catalog.Unit(k)
			var losses float64
			switch spec.Category {
			case catalog.Melee:
				losses = float64(count) * meleeLossAtk
			case catalog.Ranged:
				losses = float64(count) * rangedLossAtk
			}
			lost := int(math.Round(losses))
			atk[k] = clampNonNegative(count - lost)
		}

		for _, k := range catalog.CombatUnits() {
			count := def.Count(k)
			if count <= 0 {
				continue
			}
			s := splits[k]
			total := s.melee*meleeLossDef + s.ranged*rangedLossDef
			if total > float64(count) {
				total = float64(count)
			}
			lost := int(math.Round(total))
			def[k] = clampNonNegative(count - lost)
		}

		attackerAlive = atk.Total() > 0
		defenderAlive = def.Total() > 0
	}

	return Result{
		AttackerWon:  attackerAlive && !defenderAlive,
		Attackers:    atk,
		AttackerLost: attacking.Sub(atk),
		Defenders:    def,
		DefenderLost: defending.Sub(def),
		Luck:         luck,
	}
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
