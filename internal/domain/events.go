package domain

import (
	"time"

	"villagecore/internal/catalog"
)

// BuildingEvent is a queued building upgrade. At most MAX_BUILD_QUEUE
// uncompleted events may exist per village; at most one carries a non-nil
// CompleteAt at a time (the others wait behind it).
type BuildingEvent struct {
	ID         int64
	VillageID  int64
	Kind       catalog.BuildingKind
	CreatedAt  time.Time
	CompleteAt *time.Time
	Completed  bool
}

// UnitTrainingEvent is a queued training batch. Count decrements one unit
// at a time as the batch trains; the event is removed once Count reaches
// zero.
type UnitTrainingEvent struct {
	ID         int64
	VillageID  int64
	Kind       catalog.UnitKind
	Count      int
	CreatedAt  time.Time
	CompleteAt *time.Time
	Completed  bool
}
