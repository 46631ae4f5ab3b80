// Package pricing provides pricing schedule sources for the report run.
// Sources are lookup tables behind the core pricing.Source interface;
// credential and transport handling for live price feeds lives outside
// this system.
package pricing

import (
	"sync"

	corepricing "smartmedia-cost/core/pricing"
	"smartmedia-cost/internal/errors"
)

// SourceRegistry manages named pricing sources
type SourceRegistry struct {
	sources map[string]corepricing.Source
	mu      sync.RWMutex
}

// NewSourceRegistry creates a new registry
func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{
		sources: make(map[string]corepricing.Source),
	}
}

// Register registers a source under a provider name
func (r *SourceRegistry) Register(name string, source corepricing.Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = source
}

// Get returns a source for a provider name
func (r *SourceRegistry) Get(name string) (corepricing.Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[name]
	if !ok {
		return nil, errors.NotFound("pricing source", name)
	}
	return source, nil
}

// List returns all registered provider names
func (r *SourceRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	return names
}

// Default returns a registry with the built-in transcode source
func Default() *SourceRegistry {
	registry := NewSourceRegistry()
	registry.Register(ProviderAWSETS, NewTableSource())
	return registry
}
