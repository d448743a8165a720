package catalog

// UnitKind identifies a trainable/movable unit kind.
type UnitKind int

const (
	Archer UnitKind = iota
	Swordsman
	Knight
	Skirmisher
	Nobleman
	// Spy is declared per the catalogue's Open Question resolution: the
	// combat resolver and dispatcher never select spy movements into an
	// engagement's attacker/defender aggregation.
	Spy
)

// OffenseCategory is the melee/ranged split used to compute engagement
// defense allocation. Spy's row carries Melee, but CombatUnits leaves Spy
// out, so it never enters the split.
type OffenseCategory int

const (
	Melee OffenseCategory = iota
	Ranged
)

// UnitSpec is the static parameter row for one unit kind.
type UnitSpec struct {
	Kind        UnitKind
	Name        string
	Category    OffenseCategory
	Wood        float64
	Clay        float64
	Iron        float64
	BaseTrainMs float64
	Attack      float64
	DefMelee    float64
	DefRanged   float64
	SpeedMsTile float64
	Loot        float64
	Population  float64
}

var units = map[UnitKind]UnitSpec{
	Archer:     {Kind: Archer, Name: "archer", Category: Ranged, Wood: 75, Clay: 30, Iron: 45, BaseTrainMs: 6.5 * 60_000, Attack: 23, DefMelee: 8, DefRanged: 7, SpeedMsTile: 18 * 60_000, Loot: 15, Population: 1},
	Swordsman:  {Kind: Swordsman, Name: "swordsman", Category: Melee, Wood: 45, Clay: 35, Iron: 65, BaseTrainMs: 6 * 60_000, Attack: 20, DefMelee: 9, DefRanged: 8, SpeedMsTile: 20 * 60_000, Loot: 20, Population: 1},
	Knight:     {Kind: Knight, Name: "knight", Category: Melee, Wood: 35, Clay: 35, Iron: 75, BaseTrainMs: 6.8 * 60_000, Attack: 10, DefMelee: 28, DefRanged: 13, SpeedMsTile: 20 * 60_000, Loot: 25, Population: 1},
	Skirmisher: {Kind: Skirmisher, Name: "skirmisher", Category: Melee, Wood: 75, Clay: 30, Iron: 40, BaseTrainMs: 6.2 * 60_000, Attack: 8, DefMelee: 10, DefRanged: 30, SpeedMsTile: 18 * 60_000, Loot: 25, Population: 1},
	Nobleman:   {Kind: Nobleman, Name: "nobleman", Category: Melee, Wood: 50000, Clay: 50000, Iron: 50000, BaseTrainMs: 60 * 60_000, Attack: 50, DefMelee: 50, DefRanged: 50, SpeedMsTile: 30 * 60_000, Loot: 0, Population: 100},
	Spy:        {Kind: Spy, Name: "spy", Category: Melee, Wood: 0, Clay: 0, Iron: 0, BaseTrainMs: 0, Attack: 0, DefMelee: 0, DefRanged: 0, SpeedMsTile: 10 * 60_000, Loot: 0, Population: 1},
}

// Unit returns the static spec for a unit kind. Panics on an unknown kind.
func Unit(kind UnitKind) UnitSpec {
	spec, ok := units[kind]
	if !ok {
		panic("catalog: unknown unit kind")
	}
	return spec
}

// AllUnits returns every declared unit kind, in a stable order.
func AllUnits() []UnitKind {
	return []UnitKind{Archer, Swordsman, Knight, Skirmisher, Nobleman, Spy}
}

// CombatUnits returns the unit kinds the combat resolver ever aggregates —
// every kind except Spy.
func CombatUnits() []UnitKind {
	return []UnitKind{Archer, Swordsman, Knight, Skirmisher, Nobleman}
}

// Cost returns the (wood, clay, iron) cost to train a single unit of this kind.
func (s UnitSpec) Cost() (wood, clay, iron float64) {
	return s.Wood, s.Clay, s.Iron
}
