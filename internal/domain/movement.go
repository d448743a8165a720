package domain

import "time"

// UnitMovement represents units travelling between two villages: a one-way
// outbound leg and an optional return leg. Exactly one of IsAttack,
// IsSupport, IsSpy is set. A movement with Completed=true is terminal.
type UnitMovement struct {
	ID              int64
	OriginVillageID int64
	TargetVillageID int64

	CreatedAt time.Time
	ArrivalAt time.Time
	ReturnAt  *time.Time
	Completed bool

	Units Units

	ReturnWood float64
	ReturnClay float64
	ReturnIron float64

	IsAttack  bool
	IsSupport bool
	IsSpy     bool
}

// IsRipe reports whether the movement has reached its target and has not
// yet been consumed by a resolver (still outbound, not yet returning).
func (m *UnitMovement) IsRipe(now time.Time) bool {
	return !m.Completed && m.ReturnAt == nil && !m.ArrivalAt.After(now)
}

// IsReturning reports whether the movement carries a return leg.
func (m *UnitMovement) IsReturning() bool {
	return m.ReturnAt != nil
}

// ReturnPayload returns the movement's return resource payload.
func (m *UnitMovement) ReturnPayload() Resources {
	return Resources{Wood: m.ReturnWood, Clay: m.ReturnClay, Iron: m.ReturnIron}
}

// SetReturnPayload sets the movement's return resource payload.
func (m *UnitMovement) SetReturnPayload(r Resources) {
	m.ReturnWood, m.ReturnClay, m.ReturnIron = r.Wood, r.Clay, r.Iron
}
