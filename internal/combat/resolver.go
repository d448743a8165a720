package combat

import (
	"context"
	"fmt"
	"math"
	"time"

	"villagecore/internal/catalog"
	"villagecore/internal/clock"
	"villagecore/internal/domain"
	"villagecore/internal/events"
	"villagecore/internal/inbox"
	"villagecore/internal/logger"
	"villagecore/internal/rng"
	"villagecore/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver resolves a single target village's ripe engagement: gathering
// ready attackers and supporters, running Simulate, and applying losses,
// loot, loyalty damage, and conquest. Grounded on combat.py's AttackResolver
// and its _process_attacking_movements / _process_defending_village /
// _process_supporting_movements trio.
type Resolver struct {
	Store store.Store
	Clock clock.Clock
	RNG   rng.RNG
	Inbox inbox.Inbox
	Bus   events.EventBus
}

// NewResolver constructs a Resolver from its collaborators.
func NewResolver(s store.Store, c clock.Clock, r rng.RNG, ib inbox.Inbox, bus events.EventBus) *Resolver {
	return &Resolver{Store: s, Clock: c, RNG: r, Inbox: ib, Bus: bus}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func villageDistance(a, b *domain.Village) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ResolveTarget resolves the engagement for the village identified by
// targetID as of now. villages must already hold exclusive locks on
// targetID and every distinct origin village among the ripe
// attackers/supporters, acquired by the dispatcher via
// Store.WithVillagesLocked. Returns nil with no side effects if no attack
// has ripened.
func (r *Resolver) ResolveTarget(ctx context.Context, now time.Time, targetID int64, villages map[int64]*domain.Village) error {
	target := villages[targetID]

	attackers, supporters := r.Store.ListRipeMovements(targetID, now)
	if len(attackers) == 0 {
		return nil
	}

	A := sumMovementUnits(attackers)
	D := target.Garrison.Clone().Add(sumMovementUnits(supporters))

	originalLoyalty := target.Loyalty
	luck := r.RNG.Uniform(-0.25, 0.25)
	result := Simulate(A, D, luck)

	attackerRatio := lossRatios(A, result.AttackerLost)
	defenderRatio := lossRatios(D, result.DefenderLost)

	engaged := make(map[int64]domain.Units, len(attackers)+len(supporters))
	lostByMovement := make(map[int64]domain.Units, len(attackers)+len(supporters))

	for _, m := range attackers {
		engaged[m.ID] = m.Units.Clone()
		lost := applyLossRatio(m.Units, attackerRatio)
		lostByMovement[m.ID] = lost

		if origin := villages[m.OriginVillageID]; origin != nil {
			origin.Garrison = origin.Garrison.Sub(lost)
		}
		m.Units = m.Units.Sub(lost)
	}

	var conqueringMovement *domain.UnitMovement
	var looted domain.Resources
	var loyaltyDamage float64
	ownLoot := make(map[int64]domain.Resources, len(attackers))

	if result.AttackerWon {
		capacity := lootCapacity(result.Attackers)
		looted = domain.Resources{
			Wood: math.Min(target.Stock.Wood*0.8, math.Floor(capacity/3)),
			Clay: math.Min(target.Stock.Clay*0.8, math.Floor(capacity/3)),
			Iron: math.Min(target.Stock.Iron*0.8, math.Floor(capacity/3)),
		}
		target.Stock = target.Stock.Sub(looted)

		for _, m := range attackers {
			ownCapacity := lootCapacity(m.Units)
			var share domain.Resources
			if capacity > 0 {
				share = looted.Scale(ownCapacity / capacity)
			}
			ownLoot[m.ID] = share
			m.SetReturnPayload(share)

			if m.Units.Total() == 0 {
				m.Completed = true
			} else if origin := villages[m.OriginVillageID]; origin != nil {
				r.sendBack(m, now, target, origin)
			}
			r.Store.UpdateMovement(m)
		}

		if result.Attackers.Count(catalog.Nobleman) > 0 {
			loyaltyDamage = 20 + math.Round((luck+0.25)*2*15)
			target.Loyalty = math.Max(0, target.Loyalty-loyaltyDamage)

			if target.Loyalty == 0 {
				for _, m := range attackers {
					if m.Units.Count(catalog.Nobleman) > 0 {
						conqueringMovement = m
						break
					}
				}
				if conqueringMovement != nil {
					if origin := villages[conqueringMovement.OriginVillageID]; origin != nil {
						target.OwnerPlayerID = origin.OwnerPlayerID
						target.Loyalty = 100
					}
				}
			}
		}
	} else {
		for _, m := range attackers {
			m.Completed = true
			r.Store.UpdateMovement(m)
		}
	}

	target.Garrison = target.Garrison.Sub(applyLossRatio(target.Garrison, defenderRatio))

	for _, m := range supporters {
		engaged[m.ID] = m.Units.Clone()
		lost := applyLossRatio(m.Units, defenderRatio)
		lostByMovement[m.ID] = lost

		m.Units = m.Units.Sub(lost)
		if origin := villages[m.OriginVillageID]; origin != nil {
			origin.Garrison = origin.Garrison.Sub(lost)
		}
		if m.Units.Total() == 0 {
			m.Completed = true
		}
		r.Store.UpdateMovement(m)
	}

	r.deliverReports(ctx, now, target, villages, attackers, supporters, result,
		originalLoyalty, loyaltyDamage, engaged, lostByMovement, ownLoot, conqueringMovement)

	if r.Bus != nil {
		_ = r.Bus.Publish(ctx, events.NewCombatResolvedEvent(targetID, now, events.CombatResolvedPayload{
			AttackMovementID: attackers[0].ID,
			DefenderVillage:  targetID,
			Conquered:        conqueringMovement != nil,
		}))
	}

	return nil
}

// sendBack sets a surviving attacking movement's return leg, travelling
// from the target back to its origin at the survivors' own speed envelope.
func (r *Resolver) sendBack(m *domain.UnitMovement, now time.Time, target, origin *domain.Village) {
	travelMs := m.Units.SlowestSpeedMsTile() * villageDistance(target, origin)
	returnAt := now.Add(msToDuration(travelMs))
	m.ReturnAt = &returnAt
}

func (r *Resolver) deliverReports(
	ctx context.Context,
	now time.Time,
	target *domain.Village,
	villages map[int64]*domain.Village,
	attackers, supporters []*domain.UnitMovement,
	result Result,
	originalLoyalty, loyaltyDamage float64,
	engaged, lost map[int64]domain.Units,
	ownLoot map[int64]domain.Resources,
	conquering *domain.UnitMovement,
) {
	preBattleAttackers := result.Attackers.Add(sumLost(attackers, lost))
	preBattleDefenders := sumMovementUnits(supporters).Add(target.Garrison).Add(result.DefenderLost)

	base := domain.BattleReportPayload{
		TargetVillageID: target.ID,
		TargetName:      target.Name,
		AttackerUnits:   preBattleAttackers,
		AttackerLosses:  result.AttackerLost,
		DefenderUnits:   preBattleDefenders,
		DefenderLosses:  result.DefenderLost,
		Luck:            result.Luck,
		AttackerWon:     result.AttackerWon,
		LoyaltyBefore:   originalLoyalty,
		LoyaltyDamage:   loyaltyDamage,
		Conquered:       conquering != nil,
	}

	for _, m := range attackers {
		survivors := m.Units
		own := domain.Participation{
			Role:         domain.RoleAttacker,
			MovementID:   m.ID,
			UnitsEngaged: engaged[m.ID],
			UnitsLost:    lost[m.ID],
			LootCapacity: lootCapacity(survivors),
			LootShare:    ownLoot[m.ID],
			Conquest:     conquering == m,
		}
		payload := base
		payload.Recipient = own

		origin := villages[m.OriginVillageID]
		if origin == nil || origin.OwnerPlayerID == nil {
			continue
		}

		message := fmt.Sprintf("Battle Report: Attack on %s", target.Name)
		if conquering == m {
			message = fmt.Sprintf("CONQUEST: You have conquered %s!", target.Name)
		}
		r.deliver(ctx, *origin.OwnerPlayerID, message, &domain.BattleReport{
			ID:                uuid.New().String(),
			RecipientPlayerID: *origin.OwnerPlayerID,
			CreatedAt:         now,
			Message:           message,
			Payload:           payload,
		})
	}

	for _, m := range supporters {
		own := domain.Participation{
			Role:         domain.RoleSupporter,
			MovementID:   m.ID,
			UnitsEngaged: engaged[m.ID],
			UnitsLost:    lost[m.ID],
		}
		payload := base
		payload.Recipient = own

		origin := villages[m.OriginVillageID]
		if origin == nil || origin.OwnerPlayerID == nil {
			continue
		}

		message := fmt.Sprintf("Battle Report: Your supporting units in %s", target.Name)
		r.deliver(ctx, *origin.OwnerPlayerID, message, &domain.BattleReport{
			ID:                uuid.New().String(),
			RecipientPlayerID: *origin.OwnerPlayerID,
			CreatedAt:         now,
			Message:           message,
			Payload:           payload,
		})
	}

	if target.OwnerPlayerID != nil {
		own := domain.Participation{
			Role:         domain.RoleDefender,
			UnitsEngaged: base.DefenderUnits,
			UnitsLost:    result.DefenderLost,
			Conquest:     conquering != nil,
		}
		payload := base
		payload.Recipient = own

		message := "Your village was successfully defended"
		if conquering != nil {
			message = fmt.Sprintf("Your village %s was conquered!", target.Name)
		}
		r.deliver(ctx, *target.OwnerPlayerID, message, &domain.BattleReport{
			ID:                uuid.New().String(),
			RecipientPlayerID: *target.OwnerPlayerID,
			CreatedAt:         now,
			Message:           message,
			Payload:           payload,
		})
	}
}

func sumLost(movements []*domain.UnitMovement, lost map[int64]domain.Units) domain.Units {
	total := domain.Units{}
	for _, m := range movements {
		total = total.Add(lost[m.ID])
	}
	return total
}

func sumMovementUnits(movements []*domain.UnitMovement) domain.Units {
	total := domain.Units{}
	for _, m := range movements {
		total = total.Add(m.Units)
	}
	return total
}

func lossRatios(total, lost domain.Units) map[catalog.UnitKind]float64 {
	out := make(map[catalog.UnitKind]float64, len(catalog.CombatUnits()))
	for _, k := range catalog.CombatUnits() {
		t := total.Count(k)
		if t <= 0 {
			out[k] = 0
			continue
		}
		out[k] = float64(lost.Count(k)) / float64(t)
	}
	return out
}

func applyLossRatio(units domain.Units, ratio map[catalog.UnitKind]float64) domain.Units {
	out := domain.Units{}
	for k, c := range units {
		out[k] = int(math.Round(float64(c) * ratio[k]))
	}
	return out
}

func lootCapacity(units domain.Units) float64 {
	total := 0.0
	for _, k := range catalog.CombatUnits() {
		total += float64(units.Count(k)) * catalog.Unit(k).Loot
	}
	return total
}

func (r *Resolver) deliver(ctx context.Context, playerID, message string, report *domain.BattleReport) {
	payload, err := report.PayloadJSON()
	if err != nil {
		logger.Warn("failed to marshal battle report", zap.Error(err))
		return
	}
	if err := r.Inbox.Deliver(ctx, playerID, message, payload); err != nil {
		logger.Warn("failed to deliver battle report", zap.String("player_id", playerID), zap.Error(err))
	}
}
