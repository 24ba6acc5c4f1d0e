package provider

import (
	"fmt"
	"sort"
)

// Registry maps provider names to configured Provider instances and tracks
// the default provider used when a tool call omits the provider field.
//
// The registry is built once at process start and never mutated afterwards;
// tools borrow Provider references per call through Resolve. Keeping it an
// explicit injected value rather than a package-level singleton keeps tests
// free to build throwaway registries with fakes.
type Registry struct {
	providers   map[string]Provider
	defaultName string
}

// NewRegistry creates a Registry holding the given providers. defaultName
// selects the provider returned by Resolve("") and must match one of the
// provided instances; an empty defaultName selects the first provider by
// sorted name.
func NewRegistry(defaultName string, providers ...Provider) (*Registry, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}

	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("nil provider")
		}
		if _, dup := byName[p.Name()]; dup {
			return nil, fmt.Errorf("duplicate provider: %s", p.Name())
		}
		byName[p.Name()] = p
	}

	if defaultName == "" {
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Strings(names)
		defaultName = names[0]
	}
	if _, ok := byName[defaultName]; !ok {
		return nil, fmt.Errorf("default provider %q is not configured", defaultName)
	}

	return &Registry{providers: byName, defaultName: defaultName}, nil
}

// Resolve returns the provider registered under name, or the default provider
// when name is empty. Unknown names produce a NotFoundError.
func (r *Registry) Resolve(name string) (Provider, error) {
	if name == "" {
		name = r.defaultName
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return p, nil
}

// DefaultName returns the name of the default provider.
func (r *Registry) DefaultName() string {
	return r.defaultName
}

// Names returns the sorted names of all registered providers.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
