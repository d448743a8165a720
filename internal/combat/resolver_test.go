package combat_test

import (
	"context"
	"testing"
	"time"

	"villagecore/internal/catalog"
	"villagecore/internal/clock"
	"villagecore/internal/combat"
	"villagecore/internal/domain"
	"villagecore/internal/inbox"
	"villagecore/internal/rng"
	"villagecore/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestResolveTargetAppliesLossesAndLoot(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	ctx := context.Background()

	target := &domain.Village{
		ID:       s.NextVillageID(),
		Garrison: domain.Units{catalog.Archer: 5, catalog.Swordsman: 5, catalog.Knight: 2, catalog.Skirmisher: 2},
		Stock:    domain.Resources{Wood: 1000, Clay: 1000, Iron: 1000},
		Loyalty:  100,
	}
	owner := "attacker-1"
	origin := &domain.Village{
		ID:            s.NextVillageID(),
		OwnerPlayerID: &owner,
		Garrison:      domain.Units{catalog.Archer: 15, catalog.Swordsman: 15, catalog.Knight: 5, catalog.Skirmisher: 5},
	}

	m := &domain.UnitMovement{
		ID:              s.NextMovementID(),
		OriginVillageID: origin.ID,
		TargetVillageID: target.ID,
		CreatedAt:       now.Add(-time.Hour),
		ArrivalAt:       now,
		Units:           domain.Units{catalog.Archer: 15, catalog.Swordsman: 15, catalog.Knight: 5, catalog.Skirmisher: 5},
		IsAttack:        true,
	}
	s.AppendMovement(m)

	r := combat.NewResolver(s, clock.Fixed{At: now}, rng.Fixed{Value: 0}, inbox.NewMemoryInbox(), nil)
	villages := map[int64]*domain.Village{target.ID: target, origin.ID: origin}

	err := r.ResolveTarget(ctx, now, target.ID, villages)
	assert.NoError(t, err)

	assert.True(t, target.Garrison.IsEmpty())
	assert.Equal(t, 13, origin.Garrison.Count(catalog.Archer))
	assert.Equal(t, 13, origin.Garrison.Count(catalog.Swordsman))
	assert.Equal(t, 4, origin.Garrison.Count(catalog.Knight))
	assert.Equal(t, 4, origin.Garrison.Count(catalog.Skirmisher))

	assert.Equal(t, 782.0, target.Stock.Wood)
	assert.Equal(t, 782.0, target.Stock.Clay)
	assert.Equal(t, 782.0, target.Stock.Iron)

	updated, err := s.GetMovement(m.ID)
	assert.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.NotNil(t, updated.ReturnAt)
	payload := updated.ReturnPayload()
	assert.Equal(t, 218.0, payload.Wood)
	assert.Equal(t, 218.0, payload.Clay)
	assert.Equal(t, 218.0, payload.Iron)
}

func TestResolveTargetConquestTransfersOwnershipAndResetsLoyalty(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	ctx := context.Background()

	target := &domain.Village{
		ID:       s.NextVillageID(),
		Garrison: domain.Units{},
		Stock:    domain.Resources{},
		Loyalty:  15,
	}
	owner := "attacker-1"
	origin := &domain.Village{
		ID:            s.NextVillageID(),
		OwnerPlayerID: &owner,
		Garrison: domain.Units{
			catalog.Nobleman: 1, catalog.Archer: 20, catalog.Swordsman: 20,
			catalog.Knight: 10, catalog.Skirmisher: 10,
		},
	}

	m := &domain.UnitMovement{
		ID:              s.NextMovementID(),
		OriginVillageID: origin.ID,
		TargetVillageID: target.ID,
		CreatedAt:       now.Add(-time.Hour),
		ArrivalAt:       now,
		Units: domain.Units{
			catalog.Nobleman: 1, catalog.Archer: 20, catalog.Swordsman: 20,
			catalog.Knight: 10, catalog.Skirmisher: 10,
		},
		IsAttack: true,
	}
	s.AppendMovement(m)

	r := combat.NewResolver(s, clock.Fixed{At: now}, rng.Fixed{Value: 0}, inbox.NewMemoryInbox(), nil)
	villages := map[int64]*domain.Village{target.ID: target, origin.ID: origin}

	err := r.ResolveTarget(ctx, now, target.ID, villages)
	assert.NoError(t, err)

	assert.NotNil(t, target.OwnerPlayerID)
	assert.Equal(t, owner, *target.OwnerPlayerID)
	assert.Equal(t, 100.0, target.Loyalty)
}

func TestResolveTargetZeroLootLeavesTargetStockUnchanged(t *testing.T) {
	// Round-trip property: an attack against an empty treasury loots nothing,
	// and the surviving movement's return payload is correspondingly zero.
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	ctx := context.Background()

	target := &domain.Village{
		ID:       s.NextVillageID(),
		Garrison: domain.Units{},
		Stock:    domain.Resources{},
		Loyalty:  100,
	}
	owner := "attacker-1"
	origin := &domain.Village{
		ID:            s.NextVillageID(),
		OwnerPlayerID: &owner,
		Garrison:      domain.Units{catalog.Archer: 10},
	}

	m := &domain.UnitMovement{
		ID:              s.NextMovementID(),
		OriginVillageID: origin.ID,
		TargetVillageID: target.ID,
		CreatedAt:       now.Add(-time.Hour),
		ArrivalAt:       now,
		Units:           domain.Units{catalog.Archer: 10},
		IsAttack:        true,
	}
	s.AppendMovement(m)

	r := combat.NewResolver(s, clock.Fixed{At: now}, rng.Fixed{Value: 0}, inbox.NewMemoryInbox(), nil)
	villages := map[int64]*domain.Village{target.ID: target, origin.ID: origin}

	err := r.ResolveTarget(ctx, now, target.ID, villages)
	assert.NoError(t, err)

	assert.True(t, target.Stock.IsZero())
	updated, _ := s.GetMovement(m.ID)
	payload := updated.ReturnPayload()
	assert.True(t, payload.IsZero())
}

func TestResolveTargetNoRipeAttackerIsNoOp(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	ctx := context.Background()

	target := &domain.Village{ID: s.NextVillageID(), Garrison: domain.Units{catalog.Archer: 5}}

	r := combat.NewResolver(s, clock.Fixed{At: now}, rng.Fixed{Value: 0}, inbox.NewMemoryInbox(), nil)
	err := r.ResolveTarget(ctx, now, target.ID, map[int64]*domain.Village{target.ID: target})

	assert.NoError(t, err)
	assert.Equal(t, 5, target.Garrison.Count(catalog.Archer))
}

func TestLoyaltyDamageBoundaryValues(t *testing.T) {
	// Boundary case: luck=+0.25 yields loyalty_damage=35, luck=-0.25 yields 20.
	run := func(luckValue float64) float64 {
		s := store.NewMemoryStore()
		now := time.Now().UTC()
		ctx := context.Background()

		target := &domain.Village{ID: s.NextVillageID(), Garrison: domain.Units{}, Loyalty: 100}
		owner := "attacker-1"
		origin := &domain.Village{ID: s.NextVillageID(), OwnerPlayerID: &owner, Garrison: domain.Units{catalog.Nobleman: 1}}

		m := &domain.UnitMovement{
			ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID,
			CreatedAt: now.Add(-time.Hour), ArrivalAt: now,
			Units: domain.Units{catalog.Nobleman: 1}, IsAttack: true,
		}
		s.AppendMovement(m)

		r := combat.NewResolver(s, clock.Fixed{At: now}, rng.Fixed{Value: luckValue}, inbox.NewMemoryInbox(), nil)
		villages := map[int64]*domain.Village{target.ID: target, origin.ID: origin}
		_ = r.ResolveTarget(ctx, now, target.ID, villages)

		return 100.0 - target.Loyalty
	}

	assert.Equal(t, 35.0, run(0.25))
	assert.Equal(t, 20.0, run(-0.25))
}
