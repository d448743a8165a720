package gateway

import (
	"context"
	"time"

	"villagecore/internal/apperrors"
	"villagecore/internal/domain"
	"villagecore/internal/engine"
)

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// SendUnits dispatches units from origin to target as an attack, support,
// or spy mission. The target village is read, not locked: nothing about
// the send operation mutates it. Only the origin's movement list changes;
// its garrison keeps the sent units, which count as unavailable while their
// movement is open.
func (g *Gateway) SendUnits(ctx context.Context, originID, targetID int64, units domain.Units, kind MovementKind, userID string) (*domain.UnitMovement, error) {
	if originID == targetID {
		return nil, apperrors.New(apperrors.KindSelfTarget, "cannot send units to the origin village")
	}
	if units.IsEmpty() {
		return nil, apperrors.New(apperrors.KindValueError, "no units specified")
	}

	target, err := g.Store.GetVillage(ctx, targetID)
	if err != nil {
		return nil, err
	}

	var created *domain.UnitMovement
	err = g.Store.WithVillageLock(ctx, originID, func(origin *domain.Village) error {
		now := g.Clock.Now()
		engine.AdvanceTo(ctx, g.Store, origin, now, g.GameSpeed, g.Bus)

		if err := g.authorizeOwner(origin, userID); err != nil {
			return err
		}

		available := availableUnits(g.Store, origin)
		for k, c := range units {
			if c > 0 && c > available.Count(k) {
				return apperrors.New(apperrors.KindInsufficientUnit, "insufficient available %v units", k)
			}
		}

		travelMs := units.SlowestSpeedMsTile() * distance(origin, target)
		m := &domain.UnitMovement{
			ID:              g.Store.NextMovementID(),
			OriginVillageID: originID,
			TargetVillageID: targetID,
			CreatedAt:       now,
			ArrivalAt:       now.Add(msToDuration(travelMs)),
			Units:           units.Clone(),
		}
		switch kind {
		case KindAttack:
			m.IsAttack = true
		case KindSupport:
			m.IsSupport = true
		case KindSpy:
			m.IsSpy = true
		}
		g.Store.AppendMovement(m)

		created = m
		return nil
	})

	if err != nil {
		return nil, err
	}
	return created, nil
}

// CancelSupport recalls a standing support movement. Before the movement
// has reached its target, the recall mirrors the outbound leg symmetrically
// (it has only travelled partway, so it arrives home after the same elapsed
// time it had already spent travelling). Once it has arrived and is
// garrisoned at the target, a recall must cover the full return distance at
// the support's own travel speed.
func (g *Gateway) CancelSupport(ctx context.Context, vid int64, movementID int64, userID string) (*domain.UnitMovement, error) {
	m, err := g.Store.GetMovement(movementID)
	if err != nil {
		return nil, err
	}
	if m.OriginVillageID != vid {
		return nil, apperrors.New(apperrors.KindNotFound, "movement %d does not belong to village %d", movementID, vid)
	}
	if !m.IsSupport {
		return nil, apperrors.New(apperrors.KindNotFound, "movement %d is not a support", movementID)
	}
	if m.Completed {
		return nil, apperrors.New(apperrors.KindNotFound, "movement %d has already completed", movementID)
	}
	if m.IsReturning() {
		return nil, apperrors.New(apperrors.KindNotFound, "movement %d is already returning", movementID)
	}

	target, err := g.Store.GetVillage(ctx, m.TargetVillageID)
	if err != nil {
		return nil, err
	}

	var updated *domain.UnitMovement
	err = g.Store.WithVillageLock(ctx, vid, func(origin *domain.Village) error {
		now := g.Clock.Now()
		engine.AdvanceTo(ctx, g.Store, origin, now, g.GameSpeed, g.Bus)

		if err := g.authorizeOwner(origin, userID); err != nil {
			return err
		}

		var returnAt time.Time
		if now.Before(m.ArrivalAt) {
			elapsed := now.Sub(m.CreatedAt)
			returnAt = now.Add(elapsed)
		} else {
			travelMs := m.Units.SlowestSpeedMsTile() * distance(origin, target)
			returnAt = now.Add(msToDuration(travelMs))
		}
		m.ReturnAt = &returnAt
		g.Store.UpdateMovement(m)

		updated = m
		return nil
	})

	if err != nil {
		return nil, err
	}
	return updated, nil
}
