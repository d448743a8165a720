package gateway_test

import (
	"context"
	"testing"
	"time"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/clock"
	"villagecore/internal/domain"
	"villagecore/internal/gateway"
	"villagecore/internal/store"

	"github.com/stretchr/testify/assert"
)

const testOwner = "player-1"

func newOwnedVillage(s store.Store, now time.Time) *domain.Village {
	v := domain.NewVillage(s.NextVillageID(), 0, 0, now)
	owner := testOwner
	v.OwnerPlayerID = &owner
	s.CreateVillage(v)
	return v
}

func newGateway(s store.Store, now time.Time) *gateway.Gateway {
	return gateway.New(s, clock.Fixed{At: now}, 1.0, 2, nil)
}

func TestScheduleBuildQueuedSchedulingMatchesSeedScenario(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	v := newOwnedVillage(s, now)
	v.Stock = domain.Resources{Wood: 2000, Clay: 2000, Iron: 2000}
	v.BuildingLevels[catalog.Farm] = 5

	gw := newGateway(s, now)
	ctx := context.Background()

	first, err := gw.ScheduleBuild(ctx, v.ID, catalog.Woodcutter, testOwner)
	assert.NoError(t, err)
	assert.NotNil(t, first.CompleteAt)

	second, err := gw.ScheduleBuild(ctx, v.ID, catalog.ClayPit, testOwner)
	assert.NoError(t, err)
	assert.Nil(t, second.CompleteAt)

	_, err = gw.ScheduleBuild(ctx, v.ID, catalog.IronMine, testOwner)
	assert.True(t, apperrors.Is(err, apperrors.KindQueueFull))
}

func TestScheduleBuildRejectsNonOwner(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	gw := newGateway(s, now)

	_, err := gw.ScheduleBuild(context.Background(), v.ID, catalog.Woodcutter, "someone-else")
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestScheduleBuildInsufficientResources(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	v.Stock = domain.Resources{}
	gw := newGateway(s, now)

	_, err := gw.ScheduleBuild(context.Background(), v.ID, catalog.Woodcutter, testOwner)
	assert.True(t, apperrors.Is(err, apperrors.KindInsufficientRes))
}

func TestScheduleBuildMaxLevelReached(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	v.Stock = domain.Resources{Wood: 1e9, Clay: 1e9, Iron: 1e9}
	v.BuildingLevels[catalog.Woodcutter] = catalog.MaxBuildingLevel
	gw := newGateway(s, now)

	_, err := gw.ScheduleBuild(context.Background(), v.ID, catalog.Woodcutter, testOwner)
	assert.True(t, apperrors.Is(err, apperrors.KindMaxLevelReached))
}

func TestScheduleBuildFarmUpgradeSkipsPopulationCheck(t *testing.T) {
	// Boundary case: Farm upgrades never check population, unlike every
	// other building kind.
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	v.Stock = domain.Resources{Wood: 1e9, Clay: 1e9, Iron: 1e9}
	// Saturate population so a population-checked upgrade would fail.
	v.Garrison = domain.Units{catalog.Nobleman: 3}
	gw := newGateway(s, now)

	_, err := gw.ScheduleBuild(context.Background(), v.ID, catalog.Farm, testOwner)
	assert.NoError(t, err)
}

func TestScheduleBuildInsufficientPopulationForNonFarm(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	v.Stock = domain.Resources{Wood: 1e9, Clay: 1e9, Iron: 1e9}
	v.Garrison = domain.Units{catalog.Nobleman: 3}
	gw := newGateway(s, now)

	_, err := gw.ScheduleBuild(context.Background(), v.ID, catalog.Barracks, testOwner)
	assert.True(t, apperrors.Is(err, apperrors.KindInsufficientPop))
}
