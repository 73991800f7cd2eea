package regioninfo

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores fact values keyed by region then fact name. The zero
// value is not usable; construct one with NewRegistry. Registration is
// last-write-wins.
type Registry struct {
	mu    sync.RWMutex
	facts map[string]map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{facts: map[string]map[string]string{}}
}

// defaultRegistry carries the built-in database plus anything callers
// register at runtime.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry seeded with the built-in
// region database.
func Default() *Registry {
	return defaultRegistry
}

// Register records a fact value for a region. Later registrations for the
// same (region, name) pair overwrite earlier ones.
func (r *Registry) Register(region, name, value string) error {
	if region == "" {
		return fmt.Errorf("fact registration requires a region")
	}
	if name == "" {
		return fmt.Errorf("fact registration requires a fact name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	byName, ok := r.facts[region]
	if !ok {
		byName = map[string]string{}
		r.facts[region] = byName
	}
	byName[name] = value
	return nil
}

// Find returns the registered value for (region, name), or ok=false when
// the fact is not registered for that region.
func (r *Registry) Find(region, name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byName, ok := r.facts[region]
	if !ok {
		return "", false
	}
	v, ok := byName[name]
	return v, ok
}

// RegionMap builds the sparse region-to-value map for a fact across the
// given candidate regions. Regions without a registered value are omitted.
func (r *Registry) RegionMap(name string, regions []string) map[string]string {
	out := map[string]string{}
	for _, region := range regions {
		if v, ok := r.Find(region, name); ok {
			out[region] = v
		}
	}
	return out
}

// Regions returns every region with at least one registered fact, sorted.
func (r *Registry) Regions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.facts))
	for region := range r.facts {
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// Names returns the fact names registered for a region, sorted.
func (r *Registry) Names(region string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byName := r.facts[region]
	out := make([]string, 0, len(byName))
	for name := range byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
