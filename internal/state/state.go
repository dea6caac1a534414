// Copyright (c) 2025, Kamaran Layne <kamaran@layne.dev>
// See LICENSE for licensing information

// Package state provides a thread-safe key-value store for sharing UI handles and flags
// between the tray loop, dialogs and background watchers.
// Each Store is an explicit value owned by the application; there is no package-level instance.
//
// Functions:
//   - Get[T any](s *Store, key string) (value T, ok bool): Retrieves a value of type T by key.
//   - Set[T any](s *Store, key string, value T): Stores a value of any type under the specified key.
//   - Swap(s *Store, key string, value bool) (old bool): Sets a flag and returns its previous value.
//   - (*Store).Delete(key string): Removes the entry associated with the given key.
//   - (*Store).Clear(): Removes all entries from the store.
//
// Usage example:
//
//	st := state.New()
//	state.Set(st, "shape_index", 2)
//	idx, ok := state.Get[int](st, "shape_index")
//	st.Delete("shape_index")
//	st.Clear()
package state

import (
	"sync"
)

// Store is a map guarded by a sync.RWMutex. The zero value is not usable; call New.
type Store struct {
	mu   sync.RWMutex
	data map[string]any
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: map[string]any{}}
}

// Get retrieves a value of type T from the store using the provided key.
// If the key does not exist or the value cannot be asserted to type T, the zero value of T and false are returned.
func Get[T any](s *Store, key string) (value T, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		var zero T
		return zero, false
	}

	value, ok = v.(T)
	return
}

// Set stores a value of any type in the store under the specified key.
func Set[T any](s *Store, key string, value T) {
	s.mu.Lock()
	s.data[key] = value
	s.mu.Unlock()
}

// Swap stores a boolean flag and returns the previous value in one critical section,
// which lets callers claim a flag without a separate Get.
func Swap(s *Store, key string, value bool) (old bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, _ = s.data[key].(bool)
	s.data[key] = value
	return old
}

// Delete removes the entry associated with the given key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// Clear removes all stored entries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.data = make(map[string]any)
	s.mu.Unlock()
}
