package distribution

import (
	"io/fs"
	"sort"
	"sync"
)

// Distribution is an installed distribution: a name and the data it ships.
// Root, when set, is a plain directory used in place. Otherwise Data is
// extracted into a temporary directory on preparation.
type Distribution struct {
	Name string
	Data fs.FS
	Root string
}

// Registry maps package paths to the distributions that provide them.
type Registry struct {
	mu      sync.RWMutex
	entries map[string][]Distribution
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]Distribution)}
}

// DefaultRegistry is consulted when preparation is given no registry.
var DefaultRegistry = NewRegistry()

// Register records that pkg is provided by d. A package registered by
// several distributions is ambiguous and resolves to none of them.
func Register(pkg string, d Distribution) {
	DefaultRegistry.Register(pkg, d)
}

// Register records that pkg is provided by d.
func (r *Registry) Register(pkg string, d Distribution) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[pkg] = append(r.entries[pkg], d)
}

// Lookup returns the distribution for pkg when exactly one is registered.
func (r *Registry) Lookup(pkg string) (Distribution, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := r.entries[pkg]
	if len(found) != 1 {
		return Distribution{}, false
	}
	return found[0], true
}

// Packages returns the registered package paths in sorted order.
func (r *Registry) Packages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	packages := make([]string, 0, len(r.entries))
	for pkg := range r.entries {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)
	return packages
}
