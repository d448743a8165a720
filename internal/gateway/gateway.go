// Package gateway implements the operation gateway: the validated
// mutations (schedule-build, schedule-train, send-attack, send-support,
// cancel-support) that run under a per-village lock and enforce resource,
// population, queue, and ownership invariants. Grounded on
// original_source/app/game/village.py's VillageManager methods for
// validation order, and on the teacher's internal/transaction package for
// the "validate then mutate, abort on first error" operation shape —
// collapsed here to one function per operation rather than a composed
// Transaction/Operation object graph, since each gateway operation is a
// single-purpose, already-atomic unit of work under the store's lock.
package gateway

import (
	"context"
	"math"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/clock"
	"villagecore/internal/domain"
	"villagecore/internal/engine"
	"villagecore/internal/events"
	"villagecore/internal/logger"
	"villagecore/internal/store"

	"go.uber.org/zap"
)

// Gateway is the set of validated operations exposed to callers (a gin
// handler, an admin console, a test).
type Gateway struct {
	Store         store.Store
	Clock         clock.Clock
	GameSpeed     float64
	MaxBuildQueue int
	Bus           events.EventBus
}

// New constructs a Gateway. bus may be nil if no listener needs domain events.
func New(s store.Store, c clock.Clock, gameSpeed float64, maxBuildQueue int, bus events.EventBus) *Gateway {
	return &Gateway{Store: s, Clock: c, GameSpeed: gameSpeed, MaxBuildQueue: maxBuildQueue, Bus: bus}
}

func (g *Gateway) authorizeOwner(v *domain.Village, userID string) error {
	if v.OwnerPlayerID == nil || *v.OwnerPlayerID != userID {
		return apperrors.New(apperrors.KindForbidden, "user %q does not own village %d", userID, v.ID)
	}
	return nil
}

func (g *Gateway) publish(ctx context.Context, evt events.Event) {
	if g.Bus == nil {
		return
	}
	if err := g.Bus.Publish(ctx, evt); err != nil {
		logger.Warn("failed to publish domain event", zap.String("event_type", evt.GetType()), zap.Error(err))
	}
}

// distance returns the Euclidean tile distance between two villages. Map
// geometry is a pure function assumed by the spec, not part of the core's
// owned responsibility.
func distance(a, b *domain.Village) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// availableUnits returns the village's garrison minus every unit already
// committed to an outbound, uncompleted movement — send_units, cancel, and
// population checks must never double-count units that are already en route.
func availableUnits(s store.Store, v *domain.Village) domain.Units {
	available := v.Garrison.Clone()
	for _, m := range s.ListOutboundMovements(v.ID) {
		if m.Completed {
			continue
		}
		available = available.Sub(m.Units)
	}
	return available
}

// MovementKind selects which of the three mutually exclusive movement
// flags a send operation sets.
type MovementKind int

const (
	KindAttack MovementKind = iota
	KindSupport
	KindSpy
)
