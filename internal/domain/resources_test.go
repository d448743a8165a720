package domain_test

import (
	"testing"

	"villagecore/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestResourcesAddSub(t *testing.T) {
	a := domain.Resources{Wood: 10, Clay: 5, Iron: 2}
	b := domain.Resources{Wood: 3, Clay: 1, Iron: 1}
	assert.Equal(t, domain.Resources{Wood: 13, Clay: 6, Iron: 3}, a.Add(b))
	assert.Equal(t, domain.Resources{Wood: 7, Clay: 4, Iron: 1}, a.Sub(b))
}

func TestResourcesCanAfford(t *testing.T) {
	stock := domain.Resources{Wood: 100, Clay: 100, Iron: 100}
	assert.True(t, stock.CanAfford(domain.Resources{Wood: 100, Clay: 100, Iron: 100}))
	assert.False(t, stock.CanAfford(domain.Resources{Wood: 101}))
}

func TestResourcesIsZero(t *testing.T) {
	assert.True(t, domain.Resources{}.IsZero())
	assert.False(t, domain.Resources{Wood: 0.001}.IsZero())
}

func TestResourcesClampedAddCapsAtStorageCapacity(t *testing.T) {
	// Boundary case: production that would exceed the storage cap is
	// truncated to land exactly at the cap, never above it.
	stock := domain.Resources{Wood: 990, Clay: 990, Iron: 990}
	cap := domain.Resources{Wood: 1000, Clay: 1000, Iron: 1000}
	delta := domain.Resources{Wood: 50, Clay: 50, Iron: 50}

	result := stock.ClampedAdd(delta, cap)
	assert.Equal(t, domain.Resources{Wood: 1000, Clay: 1000, Iron: 1000}, result)
}

func TestResourcesClampedAddFloorsAtZero(t *testing.T) {
	stock := domain.Resources{Wood: 5}
	delta := domain.Resources{Wood: -50}
	cap := domain.Resources{Wood: 1000}

	result := stock.ClampedAdd(delta, cap)
	assert.Equal(t, 0.0, result.Wood)
}

func TestResourcesScale(t *testing.T) {
	r := domain.Resources{Wood: 10, Clay: 20, Iron: 30}
	assert.Equal(t, domain.Resources{Wood: 20, Clay: 40, Iron: 60}, r.Scale(2))
}
