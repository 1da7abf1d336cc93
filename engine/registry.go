package engine

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrFactoryExists is returned when registering a duplicate factory.
var ErrFactoryExists = errors.New("engine factory already registered")

// Registry maps binding names to engine factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for a binding name.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("binding name is required")
	}
	if factory == nil {
		return fmt.Errorf("factory is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrFactoryExists, name)
	}
	r.factories[name] = factory
	return nil
}

// Unregister removes the factory for name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.factories, name)
}

// Has reports whether a factory is registered for name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns registered binding names sorted for deterministic output.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Load creates the binding registered under name and probes it.
// Every failure is returned as *LoadError.
func (r *Registry) Load(name string) (Binding, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &LoadError{Binding: name, Err: errors.New("no factory registered")}
	}

	b, err := factory()
	if err != nil {
		return nil, &LoadError{Binding: name, Err: err}
	}
	if b == nil {
		return nil, &LoadError{Binding: name, Err: errors.New("factory returned nil binding")}
	}
	if err := Probe(b); err != nil {
		return nil, &LoadError{Binding: name, Err: fmt.Errorf("probe: %w", err)}
	}
	return b, nil
}
