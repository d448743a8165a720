package events

import "time"

// Event represents a domain event that can be published and consumed
type Event interface {
	// GetType returns the type of the event
	GetType() string
	// GetVillageID returns the village ID this event is associated with
	GetVillageID() int64
	// GetTimestamp returns when the event occurred
	GetTimestamp() time.Time
	// GetPayload returns the event-specific data
	GetPayload() interface{}
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	Type      string      `json:"type"`
	VillageID int64       `json:"villageId"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// GetType returns the event type
func (e *BaseEvent) GetType() string {
	return e.Type
}

// GetVillageID returns the village ID
func (e *BaseEvent) GetVillageID() int64 {
	return e.VillageID
}

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time {
	return e.Timestamp
}

// GetPayload returns the event payload
func (e *BaseEvent) GetPayload() interface{} {
	return e.Payload
}

// newBaseEvent creates a new base event stamped with the given time (the
// caller supplies "now" since this package never calls time.Now()/a clock
// directly — callers hold the clock.Clock used for the rest of the operation).
func newBaseEvent(eventType string, villageID int64, now time.Time, payload interface{}) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		VillageID: villageID,
		Timestamp: now,
		Payload:   payload,
	}
}

const (
	// TypeBuildingCompleted fires when a queued building finishes construction.
	TypeBuildingCompleted = "building.completed"
	// TypeUnitTrainingCompleted fires when a training batch finishes.
	TypeUnitTrainingCompleted = "unit_training.completed"
	// TypeMovementArrived fires when a returning movement reaches its home village.
	TypeMovementArrived = "movement.arrived"
	// TypeCombatResolved fires once per target village each time the combat
	// resolver resolves the engagement there.
	TypeCombatResolved = "combat.resolved"
)

// BuildingCompletedPayload describes a finished construction.
type BuildingCompletedPayload struct {
	BuildingSlot int
	Level        int
}

// NewBuildingCompletedEvent reports a finished construction for a village.
func NewBuildingCompletedEvent(villageID int64, now time.Time, payload BuildingCompletedPayload) *BaseEvent {
	e := newBaseEvent(TypeBuildingCompleted, villageID, now, payload)
	return &e
}

// UnitTrainingCompletedPayload describes a finished training batch.
type UnitTrainingCompletedPayload struct {
	UnitKind string
	Count    int
}

// NewUnitTrainingCompletedEvent reports a finished training batch for a village.
func NewUnitTrainingCompletedEvent(villageID int64, now time.Time, payload UnitTrainingCompletedPayload) *BaseEvent {
	e := newBaseEvent(TypeUnitTrainingCompleted, villageID, now, payload)
	return &e
}

// MovementArrivedPayload describes a movement that has returned home.
type MovementArrivedPayload struct {
	MovementID int64
}

// NewMovementArrivedEvent reports a movement returning to its home village.
func NewMovementArrivedEvent(villageID int64, now time.Time, payload MovementArrivedPayload) *BaseEvent {
	e := newBaseEvent(TypeMovementArrived, villageID, now, payload)
	return &e
}

// CombatResolvedPayload describes a resolved engagement.
type CombatResolvedPayload struct {
	AttackMovementID int64
	DefenderVillage  int64
	Conquered        bool
}

// NewCombatResolvedEvent reports a resolved engagement against a village.
func NewCombatResolvedEvent(villageID int64, now time.Time, payload CombatResolvedPayload) *BaseEvent {
	e := newBaseEvent(TypeCombatResolved, villageID, now, payload)
	return &e
}
