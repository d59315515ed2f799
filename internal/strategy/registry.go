// Package strategy provides the traversal strategies a robot can run and a
// registry to construct them by name. The registry is a code-level seam:
// nothing selects a strategy at runtime, but embedders and tests install
// their own implementations next to the built-in spiral.
package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kingrea/sweeper/internal/agent"
)

// Config carries strategy-specific settings (opaque to the registry).
type Config map[string]any

// Factory constructs a strategy with the provided configuration.
type Factory func(Config) (agent.Strategy, error)

// Registry maintains known strategy factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register installs a strategy factory. Returns an error if the ID already
// exists.
func (r *Registry) Register(id string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("strategy: id is required")
	}
	if factory == nil {
		return fmt.Errorf("strategy: factory is required for %s", id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("strategy: %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(id string, factory Factory) {
	if err := r.Register(id, factory); err != nil {
		panic(err)
	}
}

// Resolve constructs a strategy by ID.
func (r *Registry) Resolve(id string, cfg Config) (agent.Strategy, error) {
	r.mu.RLock()
	factory, ok := r.factories[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("strategy: unknown id %s", id)
	}
	strat, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy: factory for %s produced nil", id)
	}
	return strat, nil
}

// IDs returns a sorted list of registered strategy identifiers.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuiltinRegistry returns a fresh registry with the shipped strategies
// installed.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(SpiralID, func(cfg Config) (agent.Strategy, error) {
		budget, err := intConfig(cfg, ConfigStepBudget)
		if err != nil {
			return nil, err
		}
		return NewSpiral(WithStepBudget(budget)), nil
	})
	return r
}

func intConfig(cfg Config, key string) (int, error) {
	raw, ok := cfg[key]
	if !ok || raw == nil {
		return 0, nil
	}
	value, ok := raw.(int)
	if !ok {
		return 0, fmt.Errorf("strategy: config %s must be an int, got %T", key, raw)
	}
	return value, nil
}
