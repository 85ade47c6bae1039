package safemap

import (
	"sync"
)

// SafeMap is a thread-safe map implementation using sync.Map.
type SafeMap[K comparable, V any] struct {
	m sync.Map
}

func NewSafeMap[K comparable, V any]() *SafeMap[K, V] {
	return &SafeMap[K, V]{}
}

func (sm *SafeMap[K, V]) Set(key K, value V) {
	sm.m.Store(key, value)
}

func (sm *SafeMap[K, V]) Get(key K) (V, bool) {
	value, ok := sm.m.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return value.(V), ok
}

// Keys returns the keys in no particular order.
func (sm *SafeMap[K, V]) Keys() []K {
	keys := make([]K, 0)
	sm.m.Range(func(key, value any) bool {
		keys = append(keys, key.(K))
		return true
	})
	return keys
}
