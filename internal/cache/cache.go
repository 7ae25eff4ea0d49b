package cache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Named invalidation scopes. Writers to orders or carts must flush the
// matching scope so cached views never outlive the backing rows.
const (
	ScopeOrders   = "orders"
	ScopeCart     = "cart"
	ScopeProducts = "products"
)

// Invalidator is the write-side view of the store.
type Invalidator interface {
	Invalidate(scope string, userID uint)
	InvalidateScope(scope string)
}

// Store keeps one LRU per scope, keyed by user (or by query key for
// user-independent scopes like products).
type Store struct {
	mu     sync.Mutex
	size   int
	scopes map[string]*lru.Cache[string, any]
}

func NewStore(size int) *Store {
	if size <= 0 {
		size = 256
	}
	return &Store{
		size:   size,
		scopes: make(map[string]*lru.Cache[string, any]),
	}
}

func (s *Store) cacheFor(scope string) *lru.Cache[string, any] {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.scopes[scope]
	if !ok {
		c, _ = lru.New[string, any](s.size)
		s.scopes[scope] = c
	}
	return c
}

func userKey(userID uint, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("u:%d", userID)
	}
	return fmt.Sprintf("u:%d:%s", userID, suffix)
}

func (s *Store) Get(scope string, userID uint, suffix string) (any, bool) {
	return s.cacheFor(scope).Get(userKey(userID, suffix))
}

func (s *Store) Set(scope string, userID uint, suffix string, value any) {
	s.cacheFor(scope).Add(userKey(userID, suffix), value)
}

// Invalidate drops every cached entry of the scope belonging to the user.
func (s *Store) Invalidate(scope string, userID uint) {
	c := s.cacheFor(scope)
	prefix := userKey(userID, "")
	for _, k := range c.Keys() {
		if k == prefix || len(k) > len(prefix) && k[:len(prefix)+1] == prefix+":" {
			c.Remove(k)
		}
	}
}

// InvalidateScope purges the whole scope.
func (s *Store) InvalidateScope(scope string) {
	s.cacheFor(scope).Purge()
}
