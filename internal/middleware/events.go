package middleware

import (
	"context"

	"go.uber.org/zap"

	"villagecore/internal/events"
	"villagecore/internal/logger"
)

// LogDomainEvents subscribes a structured-logging listener to every domain
// event type the bus carries, so building/training/movement/combat activity
// shows up in the same log stream as HTTP request logging. This is what
// actually drives the event bus's worker pool at runtime: without a
// subscriber, Publish's listener list is empty and every call is a no-op.
func LogDomainEvents(bus events.EventBus) {
	listener := func(ctx context.Context, event events.Event) error {
		logger.WithVillage(event.GetVillageID()).Info("domain event",
			zap.String("event_type", event.GetType()),
			zap.Any("payload", event.GetPayload()),
		)
		return nil
	}

	for _, eventType := range []string{
		events.TypeBuildingCompleted,
		events.TypeUnitTrainingCompleted,
		events.TypeMovementArrived,
		events.TypeCombatResolved,
	} {
		bus.Subscribe(eventType, listener)
	}
}
