package cache

import (
	"context"
	"sync"
	"time"
)

// Item represents a cached value with an expiration time.
type Item struct {
	Value      interface{}
	Expiration int64
}

// Store is a thread-safe TTL cache. Used to memoize per-domain DNS outcomes
// so a burst of signups on the same domain costs one resolver round-trip.
type Store struct {
	items map[string]Item
	mu    sync.RWMutex
}

func New() *Store {
	return &Store{
		items: make(map[string]Item),
	}
}

// Set adds a value to the cache with a specific TTL.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = Item{
		Value:      value,
		Expiration: time.Now().Add(ttl).UnixNano(),
	}
}

// Get retrieves a value. Returns false if the item is absent or expired.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, found := s.items[key]
	if !found {
		return nil, false
	}

	if time.Now().UnixNano() > item.Expiration {
		return nil, false
	}

	return item.Value, true
}

// Cleanup removes expired items.
func (s *Store) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UnixNano()
	for k, v := range s.items {
		if now > v.Expiration {
			delete(s.items, k)
		}
	}
}

// StartCleanup launches a goroutine that evicts expired items on the given
// interval until ctx is cancelled.
func (s *Store) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}
