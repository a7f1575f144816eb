package tagtemplate

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultDialect is used when no dialect is configured.
const DefaultDialect = "liquid"

// Registry stores generators by dialect name.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// NewDefaultRegistry returns a registry holding the built-in dialects.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	registry.MustRegister(Liquid{})
	registry.MustRegister(Django{})
	registry.MustRegister(Inline{})
	return registry
}

// Register adds a generator by its Name(). Duplicate names return an error.
func (r *Registry) Register(generator Generator) error {
	if generator == nil {
		return fmt.Errorf("tagtemplate: generator is required")
	}
	name := generator.Name()
	if name == "" {
		return fmt.Errorf("tagtemplate: generator name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[name]; exists {
		return fmt.Errorf("tagtemplate: dialect %q already registered", name)
	}
	r.generators[name] = generator
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(generator Generator) {
	if err := r.Register(generator); err != nil {
		panic(err)
	}
}

// Get retrieves a generator by dialect name. An empty name selects
// DefaultDialect.
func (r *Registry) Get(name string) (Generator, error) {
	if name == "" {
		name = DefaultDialect
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	generator, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return generator, nil
}

// List returns a sorted list of dialect names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a dialect is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.generators[name]
	return ok
}
