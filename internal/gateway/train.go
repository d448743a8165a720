package gateway

import (
	"context"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/domain"
	"villagecore/internal/engine"
)

// ScheduleTrain queues count units of kind for training at village vid.
func (g *Gateway) ScheduleTrain(ctx context.Context, vid int64, kind catalog.UnitKind, count int, userID string) (*domain.UnitTrainingEvent, error) {
	if count <= 0 {
		return nil, apperrors.New(apperrors.KindValueError, "count must be positive")
	}

	var created *domain.UnitTrainingEvent

	err := g.Store.WithVillageLock(ctx, vid, func(v *domain.Village) error {
		now := g.Clock.Now()
		engine.AdvanceTo(ctx, g.Store, v, now, g.GameSpeed, g.Bus)

		if err := g.authorizeOwner(v, userID); err != nil {
			return err
		}

		barracksLevel := v.Level(catalog.Barracks)
		if barracksLevel < 1 {
			return apperrors.New(apperrors.KindBarracksRequired, "barracks not built")
		}

		open := g.Store.ListOpenTrainingEvents(vid)
		openCount := 0
		openPopulation := 0.0
		for _, e := range open {
			openCount += e.Count
			openPopulation += catalog.Unit(e.Kind).Population * float64(e.Count)
		}

		capacity := catalog.BarracksQueueCapacity(barracksLevel)
		if openCount+count > capacity {
			return apperrors.New(apperrors.KindQueueFull, "training queue full (capacity %d)", capacity)
		}

		spec := catalog.Unit(kind)
		requestedPopulation := spec.Population * float64(count)
		if v.CurrentPopulation()+requestedPopulation+openPopulation > v.MaxPopulation() {
			return apperrors.New(apperrors.KindInsufficientPop, "insufficient population for training")
		}

		cost := domain.Resources{Wood: spec.Wood, Clay: spec.Clay, Iron: spec.Iron}.Scale(float64(count))
		if !v.Stock.CanAfford(cost) {
			return apperrors.New(apperrors.KindInsufficientRes, "insufficient resources for training")
		}

		v.Stock = v.Stock.Sub(cost)

		event := &domain.UnitTrainingEvent{
			ID:        g.Store.NextTrainingEventID(),
			VillageID: vid,
			Kind:      kind,
			Count:     count,
			CreatedAt: now,
		}
		g.Store.AppendTrainingEvent(event)

		engine.AdvanceTo(ctx, g.Store, v, now, g.GameSpeed, g.Bus)

		created = event
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}
