package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/domain"
	"villagecore/internal/store"

	"github.com/stretchr/testify/assert"
)

func newVillage(s *store.MemoryStore, now time.Time) *domain.Village {
	v := domain.NewVillage(s.NextVillageID(), 0, 0, now)
	s.CreateVillage(v)
	return v
}

func TestGetVillageNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	_, err := s.GetVillage(context.Background(), 999)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestGetVillageReturnsIndependentCopy(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)
	v.Garrison = domain.Units{catalog.Archer: 5}

	snapshot, err := s.GetVillage(context.Background(), v.ID)
	assert.NoError(t, err)
	snapshot.Garrison[catalog.Archer] = 999
	snapshot.BuildingLevels[catalog.Headquarters] = 999

	live, _ := s.GetVillage(context.Background(), v.ID)
	assert.Equal(t, 5, live.Garrison.Count(catalog.Archer))
	assert.Equal(t, 1, live.Level(catalog.Headquarters))
}

func TestWithVillageLockNotFound(t *testing.T) {
	s := store.NewMemoryStore()
	err := s.WithVillageLock(context.Background(), 404, func(v *domain.Village) error { return nil })
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestWithVillageLockMutatesLiveAggregate(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)

	err := s.WithVillageLock(context.Background(), v.ID, func(village *domain.Village) error {
		village.Loyalty = 42
		return nil
	})
	assert.NoError(t, err)

	updated, _ := s.GetVillage(context.Background(), v.ID)
	assert.Equal(t, 42.0, updated.Loyalty)
}

func TestWithVillagesLockedOrdersByIDToAvoidDeadlock(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v1 := newVillage(s, now)
	v2 := newVillage(s, now)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = s.WithVillagesLocked(context.Background(), []int64{v2.ID, v1.ID}, func(vs map[int64]*domain.Village) error {
			time.Sleep(5 * time.Millisecond)
			return nil
		})
	}()
	go func() {
		defer wg.Done()
		_ = s.WithVillagesLocked(context.Background(), []int64{v1.ID, v2.ID}, func(vs map[int64]*domain.Village) error {
			time.Sleep(5 * time.Millisecond)
			return nil
		})
	}()
	wg.Wait() // would deadlock under mismatched lock order
}

func TestWithVillagesLockedDedupesIDs(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)

	err := s.WithVillagesLocked(context.Background(), []int64{v.ID, v.ID}, func(vs map[int64]*domain.Village) error {
		assert.Len(t, vs, 1)
		return nil
	})
	assert.NoError(t, err)
}

func TestWithVillagesLockedUnknownIDFails(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)

	err := s.WithVillagesLocked(context.Background(), []int64{v.ID, 999}, func(vs map[int64]*domain.Village) error { return nil })
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestBuildingEventLifecycle(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)

	e := &domain.BuildingEvent{ID: s.NextBuildingEventID(), VillageID: v.ID, Kind: catalog.Woodcutter, CreatedAt: now}
	s.AppendBuildingEvent(e)

	open := s.ListOpenBuildEvents(v.ID)
	assert.Len(t, open, 1)

	e.Completed = true
	s.UpdateBuildingEvent(e)
	assert.Empty(t, s.ListOpenBuildEvents(v.ID))

	s.AppendBuildingEvent(e)
	s.DeleteBuildingEvent(v.ID, e.ID)
	assert.Empty(t, s.ListOpenBuildEvents(v.ID))
}

func TestOpenBuildEventsOrderedByCreation(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)

	e1 := &domain.BuildingEvent{ID: s.NextBuildingEventID(), VillageID: v.ID, Kind: catalog.Woodcutter, CreatedAt: now}
	e2 := &domain.BuildingEvent{ID: s.NextBuildingEventID(), VillageID: v.ID, Kind: catalog.ClayPit, CreatedAt: now.Add(time.Second)}
	s.AppendBuildingEvent(e2)
	s.AppendBuildingEvent(e1)

	open := s.ListOpenBuildEvents(v.ID)
	assert.Equal(t, e1.ID, open[0].ID)
	assert.Equal(t, e2.ID, open[1].ID)
}

func TestTrainingEventLifecycle(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newVillage(s, now)

	e := &domain.UnitTrainingEvent{ID: s.NextTrainingEventID(), VillageID: v.ID, Kind: catalog.Archer, Count: 3, CreatedAt: now}
	s.AppendTrainingEvent(e)
	assert.Len(t, s.ListOpenTrainingEvents(v.ID), 1)

	s.DeleteTrainingEvent(v.ID, e.ID)
	assert.Empty(t, s.ListOpenTrainingEvents(v.ID))
}

func TestMovementLifecycleAndQueries(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	origin := newVillage(s, now)
	target := newVillage(s, now)

	attack := &domain.UnitMovement{
		ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID,
		ArrivalAt: now.Add(-time.Minute), IsAttack: true, Units: domain.Units{catalog.Swordsman: 5},
	}
	support := &domain.UnitMovement{
		ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID,
		ArrivalAt: now.Add(-time.Minute), IsSupport: true, Units: domain.Units{catalog.Knight: 3},
	}
	notRipe := &domain.UnitMovement{
		ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID,
		ArrivalAt: now.Add(time.Hour), IsAttack: true,
	}
	s.AppendMovement(attack)
	s.AppendMovement(support)
	s.AppendMovement(notRipe)

	fetched, err := s.GetMovement(attack.ID)
	assert.NoError(t, err)
	assert.Equal(t, attack.ID, fetched.ID)

	_, err = s.GetMovement(99999)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	outbound := s.ListOutboundMovements(origin.ID)
	assert.Len(t, outbound, 3)

	targets := s.ListRipeAttackTargets(now)
	assert.Equal(t, []int64{target.ID}, targets)

	attackers, supporters := s.ListRipeMovements(target.ID, now)
	assert.Len(t, attackers, 1)
	assert.Len(t, supporters, 1)
	assert.Equal(t, attack.ID, attackers[0].ID)
	assert.Equal(t, support.ID, supporters[0].ID)
}

func TestListReturningMovementsFiltersByOriginAndDeadline(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	origin := newVillage(s, now)
	target := newVillage(s, now)

	ripeReturn := now.Add(-time.Minute)
	futureReturn := now.Add(time.Hour)

	m1 := &domain.UnitMovement{ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID, ReturnAt: &ripeReturn}
	m2 := &domain.UnitMovement{ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID, ReturnAt: &futureReturn}
	m3 := &domain.UnitMovement{ID: s.NextMovementID(), OriginVillageID: origin.ID, TargetVillageID: target.ID, ReturnAt: &ripeReturn, Completed: true}
	s.AppendMovement(m1)
	s.AppendMovement(m2)
	s.AppendMovement(m3)

	returning := s.ListReturningMovements(origin.ID, now)
	assert.Len(t, returning, 1)
	assert.Equal(t, m1.ID, returning[0].ID)
}
