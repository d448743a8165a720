// Package catalog holds the pure, side-effect-free building and unit tables
// and their per-level formulas. Nothing here touches a store, a clock, or
// the network — catalogues are tagged kinds plus static parameter tables,
// not an inheritance hierarchy.
package catalog

import "math"

// BuildingKind identifies a building slot kind. A closed, small enum —
// there is no open-ended building registration.
type BuildingKind int

const (
	Headquarters BuildingKind = iota
	Woodcutter
	ClayPit
	IronMine
	Farm
	Storage
	Barracks
)

// MaxBuildingLevel is the ceiling every building kind shares.
const MaxBuildingLevel = 30

// BuildingSpec is the static parameter row for one building kind.
type BuildingSpec struct {
	Kind         BuildingKind
	Name         string
	BaseWood     float64
	BaseClay     float64
	BaseIron     float64
	BaseBuildMs  float64
	BasePop      float64
	IsProducer   bool
	ProducesHour bool // true for resource buildings whose production is ticked hourly
}

var buildings = map[BuildingKind]BuildingSpec{
	Headquarters: {Kind: Headquarters, Name: "headquarters", BaseWood: 95, BaseClay: 85, BaseIron: 75, BaseBuildMs: 5 * 60_000, BasePop: 5},
	Woodcutter:   {Kind: Woodcutter, Name: "woodcutter", BaseWood: 65, BaseClay: 55, BaseIron: 45, BaseBuildMs: 4 * 60_000, BasePop: 3, IsProducer: true, ProducesHour: true},
	ClayPit:      {Kind: ClayPit, Name: "clay_pit", BaseWood: 70, BaseClay: 55, BaseIron: 45, BaseBuildMs: 4 * 60_000, BasePop: 3, IsProducer: true, ProducesHour: true},
	IronMine:     {Kind: IronMine, Name: "iron_mine", BaseWood: 70, BaseClay: 55, BaseIron: 40, BaseBuildMs: 5 * 60_000, BasePop: 3, IsProducer: true, ProducesHour: true},
	Farm:         {Kind: Farm, Name: "farm", BaseWood: 55, BaseClay: 45, BaseIron: 35, BaseBuildMs: 5 * 60_000, BasePop: 0},
	Storage:      {Kind: Storage, Name: "storage", BaseWood: 65, BaseClay: 55, BaseIron: 45, BaseBuildMs: 4 * 60_000, BasePop: 2},
	Barracks:     {Kind: Barracks, Name: "barracks", BaseWood: 70, BaseClay: 55, BaseIron: 60, BaseBuildMs: 6 * 60_000, BasePop: 4},
}

// Building returns the static spec for a building kind. Panics on an
// unknown kind: the catalogue is a closed enum, an unknown kind is a
// programmer error, not a recoverable one.
func Building(kind BuildingKind) BuildingSpec {
	spec, ok := buildings[kind]
	if !ok {
		panic("catalog: unknown building kind")
	}
	return spec
}

// AllBuildings returns every declared building kind, in a stable order.
func AllBuildings() []BuildingKind {
	return []BuildingKind{Headquarters, Woodcutter, ClayPit, IronMine, Farm, Storage, Barracks}
}

// Cost returns the (wood, clay, iron) cost to build the given level of kind.
func (s BuildingSpec) Cost(level int) (wood, clay, iron float64) {
	factor := math.Pow(1.25, float64(level))
	return s.BaseWood * factor, s.BaseClay * factor, s.BaseIron * factor
}

// BuildTimeMs returns the base build time for the given level, before the
// headquarters reduction factor and GAME_SPEED are applied.
func (s BuildingSpec) BuildTimeMs(level int) float64 {
	return s.BaseBuildMs * math.Pow(1.25, float64(level))
}

// PopulationCost returns the population consumed by the given level.
func (s BuildingSpec) PopulationCost(level int) float64 {
	if level < 1 {
		return 0
	}
	return s.BasePop * math.Pow(1.17, float64(level-1))
}

// ProductionPerHour returns the resource production rate at the given level
// for a producing building kind (0 for Headquarters/Farm/Storage/Barracks).
func (s BuildingSpec) ProductionPerHour(level int, gameSpeed float64) float64 {
	if !s.IsProducer || level < 1 {
		return 0
	}
	return 30 * gameSpeed * math.Pow(1.17, float64(level-1))
}

// FarmMaxPopulation returns the population cap a Farm of the given level grants.
func FarmMaxPopulation(level int) float64 {
	if level < 1 {
		return 0
	}
	return 260 * math.Pow(1.17, float64(level-1))
}

// StorageCapacity returns the per-resource storage cap at the given level.
func StorageCapacity(level int) float64 {
	if level < 1 {
		return 0
	}
	return 1200 * math.Pow(1.24, float64(level-1))
}

// headquartersReductionFloor is the Open-Question resolution from the
// design notes: the cap is a floor of 0.05, not 0.95.
const headquartersReductionFloor = 0.05

// HeadquartersReduction returns the build-time multiplier granted by the
// headquarters at the given level (1.0 below level 2).
func HeadquartersReduction(level int) float64 {
	if level < 2 {
		return 1.0
	}
	factor := 1 - 0.025*float64(level-1)
	if factor < headquartersReductionFloor {
		return headquartersReductionFloor
	}
	return factor
}

// BarracksTrainingSpeed returns the training-time multiplier granted by the
// barracks at the given level; same shape as the headquarters reduction.
func BarracksTrainingSpeed(level int) float64 {
	return HeadquartersReduction(level)
}

// BarracksQueueCapacity returns the total in-flight unit count the barracks
// can hold at the given level. Undefined (0, disallowed) at level 0.
func BarracksQueueCapacity(level int) int {
	if level < 1 {
		return 0
	}
	return 10 + (level - 1)
}
