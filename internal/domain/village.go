package domain

import (
	"time"

	"villagecore/internal/catalog"
)

// Village is the central aggregate: a player-owned or barbarian settlement
// holding buildings, units, and resources at a map coordinate. Generalised
// from the teacher's internal/model.Game aggregate shape (map-keyed
// sub-state plus explicit timestamps) to this domain's entities.
type Village struct {
	ID int64
	X  int
	Y  int

	// OwnerPlayerID is nil for a barbarian village.
	OwnerPlayerID *string
	// Name is an optional display label, used in battle report text.
	Name string

	BuildingLevels map[catalog.BuildingKind]int
	Garrison       Units
	Stock          Resources

	// Per-resource last-reconciliation instants, preserving any fractional
	// remainder of rate_ms rather than snapping to the observation instant.
	LastUpdateWood time.Time
	LastUpdateClay time.Time
	LastUpdateIron time.Time

	Loyalty   float64
	CreatedAt time.Time
}

// NewVillage returns a fresh barbarian-owned village at the given
// coordinates with level-1 core buildings, matching a newly spawned
// settlement.
func NewVillage(id int64, x, y int, now time.Time) *Village {
	return &Village{
		ID: id,
		X:  x,
		Y:  y,
		BuildingLevels: map[catalog.BuildingKind]int{
			catalog.Headquarters: 1,
			catalog.Woodcutter:   1,
			catalog.ClayPit:      1,
			catalog.IronMine:     1,
			catalog.Farm:         1,
			catalog.Storage:      1,
		},
		Garrison:       Units{},
		Stock:          Resources{},
		LastUpdateWood: now,
		LastUpdateClay: now,
		LastUpdateIron: now,
		Loyalty:        100,
		CreatedAt:      now,
	}
}

// IsBarbarian reports whether the village has no owning player.
func (v *Village) IsBarbarian() bool {
	return v.OwnerPlayerID == nil
}

// Level returns the current level of a building kind (0 if never built).
func (v *Village) Level(kind catalog.BuildingKind) int {
	return v.BuildingLevels[kind]
}

// StorageCapacity returns the per-resource cap at the village's current
// Storage level.
func (v *Village) StorageCapacity() Resources {
	cap := catalog.StorageCapacity(v.Level(catalog.Storage))
	return Resources{Wood: cap, Clay: cap, Iron: cap}
}

// MaxPopulation returns the population ceiling granted by the village's
// current Farm level.
func (v *Village) MaxPopulation() float64 {
	return catalog.FarmMaxPopulation(v.Level(catalog.Farm))
}

// BuildingPopulation returns the population consumed by the village's
// current building levels.
func (v *Village) BuildingPopulation() float64 {
	total := 0.0
	for _, kind := range catalog.AllBuildings() {
		total += catalog.Building(kind).PopulationCost(v.Level(kind))
	}
	return total
}

// CurrentPopulation returns the population currently consumed by buildings
// and by Garrison. Movements add nothing of their own: sending units does
// not decrement Garrison, so units away on a movement are still counted
// through it.
func (v *Village) CurrentPopulation() float64 {
	return v.BuildingPopulation() + v.Garrison.Population()
}
