package gateway

import (
	"context"

	"villagecore/internal/catalog"
	"villagecore/internal/domain"
	"villagecore/internal/engine"
)

// GetVillagePrivate returns vid's state as of now, materialised via
// AdvanceTo, to the village's owner. Barbarian villages have no owner, so
// this path refuses them with Forbidden.
func (g *Gateway) GetVillagePrivate(ctx context.Context, vid int64, userID string) (*domain.Village, error) {
	var result *domain.Village

	err := g.Store.WithVillageLock(ctx, vid, func(v *domain.Village) error {
		now := g.Clock.Now()
		engine.AdvanceTo(ctx, g.Store, v, now, g.GameSpeed, g.Bus)

		if err := g.authorizeOwner(v, userID); err != nil {
			return err
		}

		cp := *v
		cp.BuildingLevels = make(map[catalog.BuildingKind]int, len(v.BuildingLevels))
		for k, lvl := range v.BuildingLevels {
			cp.BuildingLevels[k] = lvl
		}
		cp.Garrison = v.Garrison.Clone()
		result = &cp
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetMovements returns every outbound movement originating at vid, owner-only.
func (g *Gateway) GetMovements(ctx context.Context, vid int64, userID string) ([]*domain.UnitMovement, error) {
	var result []*domain.UnitMovement

	err := g.Store.WithVillageLock(ctx, vid, func(v *domain.Village) error {
		now := g.Clock.Now()
		engine.AdvanceTo(ctx, g.Store, v, now, g.GameSpeed, g.Bus)

		if err := g.authorizeOwner(v, userID); err != nil {
			return err
		}

		result = g.Store.ListOutboundMovements(vid)
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}
