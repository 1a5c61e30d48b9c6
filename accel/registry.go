package accel

import (
	"sync"
)

// Key identifies an accelerator in a registry.
type Key struct {
	Domain    string // e.g. "data-structures"
	Type      string // e.g. "list"
	Operation string // e.g. "map"
}

// Registry is a catalog of accelerators. Updates per key serialize through
// a mutex (last writer wins); no locking spans more than one call. The zero
// value is not usable, construct registries with NewRegistry or use the
// process-wide Default.
type Registry struct {
	mu      sync.Mutex
	entries map[Key]Accelerator
}

// NewRegistry creates an empty registry. Production code normally shares
// Default(); tests create their own for isolation.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Key]Accelerator)}
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, creating it on first use.
// It lives for the process lifetime and is never torn down.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register catalogs acc under key, replacing any previous entry.
func (r *Registry) Register(key Key, acc Accelerator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, replacing := r.entries[key]; replacing {
		tracer().Debugf("registry replacing accelerator for %v", key)
	}
	r.entries[key] = acc
}

// Unregister removes the entry for key and reports whether one existed.
func (r *Registry) Unregister(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.entries[key]
	delete(r.entries, key)
	return existed
}

// Get returns the accelerator for key, or nil if none is registered.
func (r *Registry) Get(key Key) Accelerator {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[key]
}

// Has reports whether an accelerator is registered for key.
func (r *Registry) Has(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[key]
	return ok
}

// Clear empties the catalog.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
}

// Len returns the number of cataloged accelerators.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
