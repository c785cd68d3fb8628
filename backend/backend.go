package backend

import "sort"

// Provider is the capability surface a storage system offers to the
// sequence layer. Paths are forward-slash normalized.
type Provider interface {
	// Name identifies the provider in logs and diagnostics.
	Name() string

	// CanHandle reports whether this provider owns the path. It must be
	// cheap and must not touch the storage system.
	CanHandle(path string) bool

	// List returns the file paths directly inside dir, sorted.
	// Directories are not included.
	List(dir string) ([]string, error)

	// Exists reports whether the path is present.
	Exists(path string) (bool, error)

	// Tracked reports whether the path is under version control.
	Tracked(path string) (bool, error)

	// Move renames oldPath to newPath.
	Move(oldPath, newPath string) error
}

// Registry priorities for the built-in providers. Higher wins.
const (
	PriorityPerforce = 40
	PriorityDisk     = 20
)

type entry struct {
	provider Provider
	priority int
}

// Registry holds providers in explicit priority order.
type Registry struct {
	entries []entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// DefaultRegistry returns a registry with only the disk provider.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Disk{}, PriorityDisk)
	return r
}

// Register adds a provider at the given priority. Equal priorities keep
// registration order.
func (r *Registry) Register(p Provider, priority int) {
	r.entries = append(r.entries, entry{provider: p, priority: priority})
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].priority > r.entries[j].priority
	})
}

// Resolve returns the highest-priority provider that accepts the path, or
// nil when none does.
func (r *Registry) Resolve(path string) Provider {
	for _, e := range r.entries {
		if e.provider.CanHandle(path) {
			return e.provider
		}
	}
	return nil
}

// ResolveTracked returns the provider that should serve a path's sequence:
// the highest-priority accepting provider that reports the path as tracked.
// When none does, the path falls through to the lowest-priority accepting
// provider, so an untracked file under a VCS root is still listed from its
// plain folder. Tracked probe errors count as not tracked.
func (r *Registry) ResolveTracked(path string) Provider {
	var last Provider
	for _, e := range r.entries {
		if !e.provider.CanHandle(path) {
			continue
		}
		if tracked, err := e.provider.Tracked(path); err == nil && tracked {
			return e.provider
		}
		last = e.provider
	}
	return last
}

// Providers returns the registered providers, highest priority first.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.provider
	}
	return out
}
