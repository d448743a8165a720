package gateway_test

import (
	"context"
	"testing"
	"time"

	"villagecore/internal/apperrors"
	"villagecore/internal/catalog"
	"villagecore/internal/domain"
	"villagecore/internal/gateway"
	"villagecore/internal/store"

	"github.com/stretchr/testify/assert"
)

func TestGetVillagePrivateRejectsNonOwner(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	gw := newGateway(s, now)

	_, err := gw.GetVillagePrivate(context.Background(), v.ID, "someone-else")
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestGetVillagePrivateRejectsBarbarianAccess(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := domain.NewVillage(s.NextVillageID(), 0, 0, now)
	s.CreateVillage(v)
	gw := newGateway(s, now)

	_, err := gw.GetVillagePrivate(context.Background(), v.ID, testOwner)
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}

func TestGetVillagePrivateAdvancesStateBeforeReturning(t *testing.T) {
	s := store.NewMemoryStore()
	t0 := time.Now().UTC()
	v := newOwnedVillage(s, t0)
	v.LastUpdateWood = t0

	later := t0.Add(time.Hour)
	gw := gateway.New(s, fixedAt(later), 1.0, 2, nil)

	result, err := gw.GetVillagePrivate(context.Background(), v.ID, testOwner)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, result.Stock.Wood)
}

func TestGetMovementsReturnsOutboundOnly(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	origin := newOwnedVillage(s, now)
	target := newOwnedVillage(s, now)
	origin.Garrison = domain.Units{catalog.Archer: 5}
	gw := newGateway(s, now)

	_, err := gw.SendUnits(context.Background(), origin.ID, target.ID, domain.Units{catalog.Archer: 2}, gateway.KindAttack, testOwner)
	assert.NoError(t, err)

	movements, err := gw.GetMovements(context.Background(), origin.ID, testOwner)
	assert.NoError(t, err)
	assert.Len(t, movements, 1)
	assert.Equal(t, origin.ID, movements[0].OriginVillageID)
}

func TestGetMovementsRejectsNonOwner(t *testing.T) {
	s := store.NewMemoryStore()
	now := time.Now().UTC()
	v := newOwnedVillage(s, now)
	gw := newGateway(s, now)

	_, err := gw.GetMovements(context.Background(), v.ID, "someone-else")
	assert.True(t, apperrors.Is(err, apperrors.KindForbidden))
}
