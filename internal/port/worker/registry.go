package worker

import (
	"fmt"
	"sync"
)

// Registry holds the fixed set of workers available to the engine, keyed by
// worker ID. Registration happens once at startup; lookups are concurrent.
type Registry struct {
	mu      sync.RWMutex
	workers map[string]Worker
	order   []string // registration order, for stable listings
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{workers: make(map[string]Worker)}
}

// Register adds a worker. Registering two workers with the same ID is a
// programming error and panics.
func (r *Registry) Register(w Worker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := w.ID()
	if _, exists := r.workers[id]; exists {
		panic(fmt.Sprintf("worker: duplicate registration for %q", id))
	}
	r.workers[id] = w
	r.order = append(r.order, id)
}

// Get returns the worker with the given ID.
func (r *Registry) Get(id string) (Worker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.workers[id]
	return w, ok
}

// List returns all registered workers in registration order.
func (r *Registry) List() []Worker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Worker, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.workers[id])
	}
	return out
}
