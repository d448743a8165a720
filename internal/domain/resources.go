package domain

import "math"

// Resources is the wood/clay/iron triple carried by a village stock, a
// building cost, or a movement's return payload. Generalises the teacher's
// fixed six-field Resources struct down to this ruleset's three kinds,
// keeping the same Add/Subtract/CanAfford arithmetic-struct idiom.
type Resources struct {
	Wood float64
	Clay float64
	Iron float64
}

// Add returns r + o.
func (r Resources) Add(o Resources) Resources {
	return Resources{Wood: r.Wood + o.Wood, Clay: r.Clay + o.Clay, Iron: r.Iron + o.Iron}
}

// Sub returns r - o (may go negative; callers check CanAfford first).
func (r Resources) Sub(o Resources) Resources {
	return Resources{Wood: r.Wood - o.Wood, Clay: r.Clay - o.Clay, Iron: r.Iron - o.Iron}
}

// Scale returns r scaled by factor.
func (r Resources) Scale(factor float64) Resources {
	return Resources{Wood: r.Wood * factor, Clay: r.Clay * factor, Iron: r.Iron * factor}
}

// CanAfford reports whether r covers the given cost on every resource.
func (r Resources) CanAfford(cost Resources) bool {
	return r.Wood >= cost.Wood && r.Clay >= cost.Clay && r.Iron >= cost.Iron
}

// IsZero reports whether every field is exactly zero.
func (r Resources) IsZero() bool {
	return r.Wood == 0 && r.Clay == 0 && r.Iron == 0
}

// ClampedAdd adds delta to r, capping each resulting field at the matching
// field of cap and flooring at zero.
func (r Resources) ClampedAdd(delta Resources, cap Resources) Resources {
	return Resources{
		Wood: clamp(r.Wood+delta.Wood, 0, cap.Wood),
		Clay: clamp(r.Clay+delta.Clay, 0, cap.Clay),
		Iron: clamp(r.Iron+delta.Iron, 0, cap.Iron),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
