package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore(16)

	s.Set(ScopeCart, 1, "", []string{"item-a"})
	v, ok := s.Get(ScopeCart, 1, "")
	assert.True(t, ok)
	assert.Equal(t, []string{"item-a"}, v)

	_, ok = s.Get(ScopeCart, 2, "")
	assert.False(t, ok)
}

func TestInvalidateIsPerUser(t *testing.T) {
	s := NewStore(16)

	s.Set(ScopeOrders, 1, "page:1", "u1-orders")
	s.Set(ScopeOrders, 1, "", "u1-summary")
	s.Set(ScopeOrders, 2, "page:1", "u2-orders")

	s.Invalidate(ScopeOrders, 1)

	_, ok := s.Get(ScopeOrders, 1, "page:1")
	assert.False(t, ok)
	_, ok = s.Get(ScopeOrders, 1, "")
	assert.False(t, ok)

	// other users keep their entries
	v, ok := s.Get(ScopeOrders, 2, "page:1")
	assert.True(t, ok)
	assert.Equal(t, "u2-orders", v)
}

func TestInvalidateScope(t *testing.T) {
	s := NewStore(16)

	s.Set(ScopeProducts, 0, "kind:skin", "skins")
	s.Set(ScopeProducts, 0, "kind:map", "maps")

	s.InvalidateScope(ScopeProducts)

	_, ok := s.Get(ScopeProducts, 0, "kind:skin")
	assert.False(t, ok)
	_, ok = s.Get(ScopeProducts, 0, "kind:map")
	assert.False(t, ok)
}
