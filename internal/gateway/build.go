package gateway

import (
	"context"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/domain"
	"villagecore/internal/engine"
)

// ScheduleBuild queues an upgrade of kind at village vid, owned by userID.
func (g *Gateway) ScheduleBuild(ctx context.Context, vid int64, kind catalog.BuildingKind, userID string) (*domain.BuildingEvent, error) {
	var created *domain.BuildingEvent

	err := g.Store.WithVillageLock(ctx, vid, func(v *domain.Village) error {
		now := g.Clock.Now()
		engine.AdvanceTo(ctx, g.Store, v, now, g.GameSpeed, g.Bus)

		if err := g.authorizeOwner(v, userID); err != nil {
			return err
		}

		open := g.Store.ListOpenBuildEvents(vid)
		if len(open) >= g.MaxBuildQueue {
			return apperrors.New(apperrors.KindQueueFull, "build queue full for village %d", vid)
		}

		level := v.Level(kind)
		if level >= catalog.MaxBuildingLevel {
			return apperrors.New(apperrors.KindMaxLevelReached, "building already at max level")
		}

		spec := catalog.Building(kind)
		if kind != catalog.Farm {
			popDelta := spec.PopulationCost(level+1) - spec.PopulationCost(level)
			if v.CurrentPopulation()+popDelta > v.MaxPopulation() {
				return apperrors.New(apperrors.KindInsufficientPop, "insufficient population for upgrade")
			}
		}

		wood, clay, iron := spec.Cost(level)
		cost := domain.Resources{Wood: wood, Clay: clay, Iron: iron}
		if !v.Stock.CanAfford(cost) {
			return apperrors.New(apperrors.KindInsufficientRes, "insufficient resources for upgrade")
		}

		v.Stock = v.Stock.Sub(cost)

		event := &domain.BuildingEvent{
			ID:        g.Store.NextBuildingEventID(),
			VillageID: vid,
			Kind:      kind,
			CreatedAt: now,
		}
		g.Store.AppendBuildingEvent(event)

		// Re-run so the new head (if none was already in flight) gets a
		// complete_at assigned immediately rather than waiting for the
		// next observation.
		engine.AdvanceTo(ctx, g.Store, v, now, g.GameSpeed, g.Bus)

		created = event
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}
