package combat

import (
	"context"
	"time"

	"villagecore/internal/clock"
	"villagecore/internal/domain"
	"villagecore/internal/engine"
	"villagecore/internal/events"
	"villagecore/internal/logger"
	"villagecore/internal/store"

	"go.uber.org/zap"
)

// Dispatcher is the privileged combat tick: it enumerates every target
// village with a ripened, uncompleted attack movement and resolves each in
// turn. Grounded on original_source/app/api/routes/combat.py's periodic
// tick endpoint, generalised to an in-process call rather than an HTTP
// route (cmd/admin exposes the HTTP trigger).
type Dispatcher struct {
	Store     store.Store
	Clock     clock.Clock
	Resolver  *Resolver
	GameSpeed float64
	Bus       events.EventBus
}

// NewDispatcher constructs a Dispatcher from its collaborators.
func NewDispatcher(s store.Store, c clock.Clock, r *Resolver, gameSpeed float64, bus events.EventBus) *Dispatcher {
	return &Dispatcher{Store: s, Clock: c, Resolver: r, GameSpeed: gameSpeed, Bus: bus}
}

// Tick resolves every ripened target village. Ordering across targets is
// unspecified; within a target, the resolver's snapshot read is frozen by
// the lock this function acquires.
func (d *Dispatcher) Tick(ctx context.Context) (resolved int, err error) {
	now := d.Clock.Now()

	for _, targetID := range d.Store.ListRipeAttackTargets(now) {
		ids := d.lockSet(targetID, now)

		lockErr := d.Store.WithVillagesLocked(ctx, ids, func(villages map[int64]*domain.Village) error {
			target := villages[targetID]
			engine.AdvanceTo(ctx, d.Store, target, now, d.GameSpeed, d.Bus)

			for id, v := range villages {
				if id == targetID {
					continue
				}
				engine.AdvanceTo(ctx, d.Store, v, now, d.GameSpeed, d.Bus)
			}

			return d.Resolver.ResolveTarget(ctx, now, targetID, villages)
		})

		if lockErr != nil {
			logger.Warn("combat tick failed to resolve target",
				zap.Int64("village_id", targetID), zap.Error(lockErr))
			continue
		}
		resolved++
	}

	return resolved, nil
}

// lockSet returns targetID plus the origin village of every currently ripe
// attacker and supporter (repeats included; WithVillagesLocked drops
// duplicates), so the dispatcher can acquire every lock the resolver will
// need up front, in the store's deterministic ascending order.
func (d *Dispatcher) lockSet(targetID int64, now time.Time) []int64 {
	attackers, supporters := d.Store.ListRipeMovements(targetID, now)

	ids := make([]int64, 0, len(attackers)+len(supporters)+1)
	ids = append(ids, targetID)
	for _, m := range attackers {
		ids = append(ids, m.OriginVillageID)
	}
	for _, m := range supporters {
		ids = append(ids, m.OriginVillageID)
	}
	return ids
}
