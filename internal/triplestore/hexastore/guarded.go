package hexastore

import "sync"

// Guarded protects a store using a single-writer, multiple-reader lock.
//
// Results obtained from the store must be fully consumed within the function they were created in.
type Guarded struct {
	m     sync.RWMutex
	store *Store
}

// NewGuarded creates a new guarded wrapping store.
func NewGuarded(store *Store) *Guarded {
	return &Guarded{store: store}
}

// View calls f while holding a read lock.
// f must not modify the store.
func (guarded *Guarded) View(f func(store *Store) error) error {
	guarded.m.RLock()
	defer guarded.m.RUnlock()

	return f(guarded.store)
}

// Update calls f while holding the write lock.
func (guarded *Guarded) Update(f func(store *Store) error) error {
	guarded.m.Lock()
	defer guarded.m.Unlock()

	return f(guarded.store)
}

// Snapshot returns an independent copy of the guarded store.
// The copy may be queried without holding any lock.
func (guarded *Guarded) Snapshot() *Store {
	guarded.m.RLock()
	defer guarded.m.RUnlock()

	return guarded.store.Clone()
}
