package domain_test

import (
	"testing"
	"time"

	"villagecore/internal/catalog"
	"villagecore/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewVillageIsBarbarianByDefault(t *testing.T) {
	now := time.Now().UTC()
	v := domain.NewVillage(1, 500, 500, now)
	assert.True(t, v.IsBarbarian())
	assert.Equal(t, 100.0, v.Loyalty)
	assert.Equal(t, 1, v.Level(catalog.Headquarters))
	assert.Equal(t, 0, v.Level(catalog.Barracks))
}

func TestVillageIsBarbarianFalseWhenOwned(t *testing.T) {
	now := time.Now().UTC()
	v := domain.NewVillage(1, 0, 0, now)
	owner := "player-1"
	v.OwnerPlayerID = &owner
	assert.False(t, v.IsBarbarian())
}

func TestVillageStorageCapacityReflectsStorageLevel(t *testing.T) {
	now := time.Now().UTC()
	v := domain.NewVillage(1, 0, 0, now)
	expected := catalog.StorageCapacity(1)
	cap := v.StorageCapacity()
	assert.Equal(t, expected, cap.Wood)
	assert.Equal(t, expected, cap.Clay)
	assert.Equal(t, expected, cap.Iron)
}

func TestVillageCurrentPopulationIsBuildingsPlusGarrison(t *testing.T) {
	// Invariant: population is building population plus garrison
	// population; movements contribute nothing of their own.
	now := time.Now().UTC()
	v := domain.NewVillage(1, 0, 0, now)
	v.Garrison = domain.Units{catalog.Swordsman: 5}

	before := v.CurrentPopulation()

	// Simulate a movement departing: garrison is never decremented on
	// send in this model, so population shouldn't move here either — this
	// asserts CurrentPopulation is purely a function of Garrison.
	v.Garrison = v.Garrison.Sub(domain.Units{})
	after := v.CurrentPopulation()

	assert.Equal(t, before, after)
	assert.Equal(t, v.BuildingPopulation()+5, before)
}

func TestVillageMaxPopulationReflectsFarmLevel(t *testing.T) {
	now := time.Now().UTC()
	v := domain.NewVillage(1, 0, 0, now)
	assert.Equal(t, catalog.FarmMaxPopulation(1), v.MaxPopulation())
}
