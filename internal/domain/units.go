package domain

import "villagecore/internal/catalog"

// Units is a per-kind unit count, the generalisation of the source's five
// hardcoded unit fields (archer/swordsman/knight/skirmisher/nobleman) to
// the catalogue's full kind set. A nil map behaves as all-zero.
type Units map[catalog.UnitKind]int

// Count returns the count for kind, 0 if absent.
func (u Units) Count(kind catalog.UnitKind) int {
	if u == nil {
		return 0
	}
	return u[kind]
}

// Clone returns an independent copy.
func (u Units) Clone() Units {
	out := make(Units, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Add returns a new Units with o's counts added to u's.
func (u Units) Add(o Units) Units {
	out := u.Clone()
	for k, v := range o {
		out[k] += v
	}
	return out
}

// Sub returns a new Units with o's counts subtracted from u's, floored at
// zero per kind.
func (u Units) Sub(o Units) Units {
	out := u.Clone()
	for k, v := range o {
		n := out[k] - v
		if n < 0 {
			n = 0
		}
		out[k] = n
	}
	return out
}

// Total returns the sum of all counts.
func (u Units) Total() int {
	total := 0
	for _, v := range u {
		total += v
	}
	return total
}

// IsEmpty reports whether every kind has a zero count.
func (u Units) IsEmpty() bool {
	for _, v := range u {
		if v > 0 {
			return false
		}
	}
	return true
}

// Population returns the total population consumed by these units.
func (u Units) Population() float64 {
	total := 0.0
	for k, v := range u {
		total += catalog.Unit(k).Population * float64(v)
	}
	return total
}

// Cost returns the total (wood, clay, iron) cost to train these units.
func (u Units) Cost() Resources {
	var total Resources
	for k, v := range u {
		spec := catalog.Unit(k)
		total = total.Add(Resources{Wood: spec.Wood, Clay: spec.Clay, Iron: spec.Iron}.Scale(float64(v)))
	}
	return total
}

// SlowestSpeedMsTile returns the maximum per-tile travel time across kinds
// with a non-zero count — the movement travels at its slowest unit's pace.
func (u Units) SlowestSpeedMsTile() float64 {
	slowest := 0.0
	for k, v := range u {
		if v <= 0 {
			continue
		}
		speed := catalog.Unit(k).SpeedMsTile
		if speed > slowest {
			slowest = speed
		}
	}
	return slowest
}
