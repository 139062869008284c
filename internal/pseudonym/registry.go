// SPDX-License-Identifier: Apache-2.0

package pseudonym

import (
	"maps"
	"sync"
)

// Registry maps digests back to the field names they were computed from. A
// Registry belongs to one classification session; it only grows and is safe
// for concurrent use by the requests of that session. A nil *Registry records
// nothing and resolves nothing.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Record stores digest -> name. Collisions are not detected: the last name
// recorded for a digest wins.
func (r *Registry) Record(digest, name string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[digest] = name
}

// Lookup returns the field name recorded for digest.
func (r *Registry) Lookup(digest string) (string, bool) {
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.entries[digest]
	return name, ok
}

// Len returns the number of recorded digests.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of every recorded entry.
func (r *Registry) Snapshot() map[string]string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Clone(r.entries)
}
