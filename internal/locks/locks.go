// Package locks provides fine-grained per-key mutual exclusion. One mutex per
// key (bodega, listing) so unrelated keys never block each other.
package locks

import (
	"sync"

	"github.com/google/uuid"
)

// Keyed is a map of mutexes indexed by uuid. Entries are created on first
// use and kept for the process lifetime: the key space (bodegas, listings)
// is small and bounded, so no eviction is needed.
type Keyed struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it if absent.
func (k *Keyed) Lock(key uuid.UUID) {
	k.get(key).Lock()
}

// Unlock releases the mutex for key. Panics if Lock was never called for key.
func (k *Keyed) Unlock(key uuid.UUID) {
	k.mu.Lock()
	m, ok := k.locks[key]
	k.mu.Unlock()
	if !ok {
		panic("locks: Unlock of never-locked key " + key.String())
	}
	m.Unlock()
}

func (k *Keyed) get(key uuid.UUID) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
