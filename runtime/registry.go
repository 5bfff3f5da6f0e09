package runtime

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a backend instance.
type Factory func() (Backend, error)

// Registry maps backend kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[BackendKind]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[BackendKind]Factory)}
}

// RegisterFactory registers a factory for kind, replacing any previous one.
// Empty kinds and nil factories are ignored.
func (r *Registry) RegisterFactory(kind BackendKind, factory Factory) {
	if kind == "" || factory == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[kind] = factory
}

// New builds a backend of the given kind.
func (r *Registry) New(kind BackendKind) (Backend, error) {
	r.mu.RLock()
	factory, ok := r.factories[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, kind)
	}
	return factory()
}

// Kinds returns the registered kinds sorted for deterministic output.
func (r *Registry) Kinds() []BackendKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]BackendKind, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
