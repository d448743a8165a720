// Package engine implements the village state engine's lazy time
// advancement: advance_to(village, t) materialises a village's canonical
// state at t from its last-known state plus its durable event records.
// Grounded line-by-line on original_source/app/game/village.py's
// VillageManager.update / _train_units / _process_build_events /
// _update_resource_until, for the exact sweep ordering (training before
// building before returning movements before the final tick) and the
// remainder-preserving last_update advancement rule.
package engine

import (
	"context"
	"math"
	"time"

	"villagecore/internal/catalog"
	"villagecore/internal/domain"
	"villagecore/internal/events"
	"villagecore/internal/store"
)

// AdvanceTo produces the village's canonical state at t: credited
// resources, promoted buildings, trained units, and consumed returning
// movements, with all side effects persisted via s. Idempotent (calling
// again with the same or earlier t is a no-op) and monotone. bus may be
// nil; when set, completion events are published as they occur.
func AdvanceTo(ctx context.Context, s store.Store, v *domain.Village, t time.Time, gameSpeed float64, bus events.EventBus) {
	trainingSweep(ctx, s, v, t, gameSpeed, bus)
	buildSweep(ctx, s, v, t, gameSpeed, bus)
	returningMovementsSweep(ctx, s, v, t, bus)
	resourceTick(v, t, gameSpeed)
}

func publish(ctx context.Context, bus events.EventBus, evt events.Event) {
	if bus == nil {
		return
	}
	_ = bus.Publish(ctx, evt)
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// trainingSweep implements §4.2 step 1.
func trainingSweep(ctx context.Context, s store.Store, v *domain.Village, t time.Time, gameSpeed float64, bus events.EventBus) {
	var lastCompletion *time.Time

	for {
		pending := s.ListOpenTrainingEvents(v.ID)
		if len(pending) == 0 {
			return
		}
		head := pending[0]

		if head.CompleteAt == nil {
			start := head.CreatedAt
			if lastCompletion != nil && lastCompletion.After(start) {
				start = *lastCompletion
			}
			duration := trainingDuration(head.Kind, v.Level(catalog.Barracks), gameSpeed)
			ca := start.Add(duration)
			head.CompleteAt = &ca
			s.UpdateTrainingEvent(head)
		}

		if head.CompleteAt.After(t) {
			return
		}

		if v.Garrison == nil {
			v.Garrison = domain.Units{}
		}
		v.Garrison[head.Kind]++
		head.Count--
		completedAt := *head.CompleteAt

		if head.Count <= 0 {
			s.DeleteTrainingEvent(v.ID, head.ID)
			lastCompletion = &completedAt
			publish(ctx, bus, events.NewUnitTrainingCompletedEvent(v.ID, completedAt, events.UnitTrainingCompletedPayload{
				UnitKind: catalog.Unit(head.Kind).Name,
				Count:    1,
			}))
			continue
		}

		duration := trainingDuration(head.Kind, v.Level(catalog.Barracks), gameSpeed)
		next := completedAt.Add(duration)
		head.CompleteAt = &next
		s.UpdateTrainingEvent(head)
	}
}

func trainingDuration(kind catalog.UnitKind, barracksLevel int, gameSpeed float64) time.Duration {
	spec := catalog.Unit(kind)
	ms := spec.BaseTrainMs * catalog.BarracksTrainingSpeed(barracksLevel) / gameSpeed
	return msToDuration(ms)
}

// buildSweep implements §4.2 step 2, running a resource tick up to each
// completion before the level change so the pre-upgrade production rate
// applies to the pre-completion interval.
func buildSweep(ctx context.Context, s store.Store, v *domain.Village, t time.Time, gameSpeed float64, bus events.EventBus) {
	var lastCompletion *time.Time

	for {
		pending := s.ListOpenBuildEvents(v.ID)
		if len(pending) == 0 {
			return
		}
		head := pending[0]

		if head.CompleteAt == nil {
			start := head.CreatedAt
			if lastCompletion != nil && lastCompletion.After(start) {
				start = *lastCompletion
			}
			duration := buildDuration(head.Kind, v.Level(head.Kind), v.Level(catalog.Headquarters), gameSpeed)
			ca := start.Add(duration)
			head.CompleteAt = &ca
			s.UpdateBuildingEvent(head)
		}

		if head.CompleteAt.After(t) {
			return
		}

		resourceTick(v, *head.CompleteAt, gameSpeed)

		if v.BuildingLevels == nil {
			v.BuildingLevels = map[catalog.BuildingKind]int{}
		}
		v.BuildingLevels[head.Kind]++
		head.Completed = true
		completedAt := *head.CompleteAt
		s.UpdateBuildingEvent(head)
		lastCompletion = &completedAt

		publish(ctx, bus, events.NewBuildingCompletedEvent(v.ID, completedAt, events.BuildingCompletedPayload{
			BuildingSlot: int(head.Kind),
			Level:        v.BuildingLevels[head.Kind],
		}))
	}
}

func buildDuration(kind catalog.BuildingKind, currentLevel, headquartersLevel int, gameSpeed float64) time.Duration {
	ms := catalog.Building(kind).BuildTimeMs(currentLevel) * catalog.HeadquartersReduction(headquartersLevel) / gameSpeed
	return msToDuration(ms)
}

// returningMovementsSweep implements §4.2 step 4.
func returningMovementsSweep(ctx context.Context, s store.Store, v *domain.Village, t time.Time, bus events.EventBus) {
	capacity := v.StorageCapacity()
	for _, m := range s.ListReturningMovements(v.ID, t) {
		v.Stock = v.Stock.ClampedAdd(m.ReturnPayload(), capacity)
		m.Completed = true
		s.UpdateMovement(m)

		publish(ctx, bus, events.NewMovementArrivedEvent(v.ID, t, events.MovementArrivedPayload{MovementID: m.ID}))
	}
}

// resourceTick implements §4.2.3, applied independently per resource kind
// since each has its own last_update instant.
func resourceTick(v *domain.Village, u time.Time, gameSpeed float64) {
	capacity := v.StorageCapacity()

	v.Stock.Wood, v.LastUpdateWood = tickOne(
		v.LastUpdateWood, v.Level(catalog.Woodcutter),
		catalog.Building(catalog.Woodcutter).ProductionPerHour(v.Level(catalog.Woodcutter), gameSpeed),
		u, v.Stock.Wood, capacity.Wood)

	v.Stock.Clay, v.LastUpdateClay = tickOne(
		v.LastUpdateClay, v.Level(catalog.ClayPit),
		catalog.Building(catalog.ClayPit).ProductionPerHour(v.Level(catalog.ClayPit), gameSpeed),
		u, v.Stock.Clay, capacity.Clay)

	v.Stock.Iron, v.LastUpdateIron = tickOne(
		v.LastUpdateIron, v.Level(catalog.IronMine),
		catalog.Building(catalog.IronMine).ProductionPerHour(v.Level(catalog.IronMine), gameSpeed),
		u, v.Stock.Iron, capacity.Iron)
}

// tickOne advances a single resource's stock and last_update up to u,
// crediting whole units of production and advancing last_update by exact
// multiples of rate_ms so no fractional remainder is lost.
func tickOne(lastUpdate time.Time, level int, productionPerHour float64, u time.Time, stock, cap float64) (float64, time.Time) {
	if level < 1 || productionPerHour <= 0 || !u.After(lastUpdate) {
		return stock, lastUpdate
	}

	deltaMs := float64(u.Sub(lastUpdate).Milliseconds())
	rateMs := 3_600_000.0 / productionPerHour
	newUnits := math.Floor(deltaMs / rateMs)
	if newUnits <= 0 {
		return stock, lastUpdate
	}

	credited := math.Min(stock+newUnits, cap)
	advanced := lastUpdate.Add(msToDuration(newUnits * rateMs))
	return credited, advanced
}
