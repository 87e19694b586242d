package adapters

import (
	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/registry"
)

// Registry holds one adapter per supported tool, configured from the
// application config.
type Registry struct {
	adapters map[string]*Adapter
	names    []string
}

// NewRegistry builds adapters for every tool in the table, applying
// per-agent configuration.
func NewRegistry(cfg *config.Config) *Registry {
	r := &Registry{adapters: make(map[string]*Adapter)}
	for _, name := range Names() {
		a, err := New(name, cfg.Agent(name), cfg.Sync)
		if err != nil {
			continue // unreachable for table names
		}
		r.adapters[name] = a
		r.names = append(r.names, name)
	}
	return r
}

// Get returns the adapter for name, or nil.
func (r *Registry) Get(name string) *Adapter {
	return r.adapters[name]
}

// Names returns all adapter names, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Enabled returns the adapters that participate in discovery and push.
func (r *Registry) Enabled() []*Adapter {
	var out []*Adapter
	for _, name := range r.names {
		if a := r.adapters[name]; a.Enabled() {
			out = append(out, a)
		}
	}
	return out
}

// SearchPaths expands every enabled adapter into discovery search paths,
// starting from startDir. Shared directories come first so they win
// priority, then each adapter's project-local and global paths. Duplicate
// directories (the shared path appears once per adapter) are collapsed to
// their first occurrence.
func (r *Registry) SearchPaths(startDir string) []registry.SearchPath {
	var paths []registry.SearchPath
	seen := make(map[string]bool)

	add := func(dir, origin string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		paths = append(paths, registry.SearchPath{Dir: dir, Origin: origin})
	}

	enabled := r.Enabled()

	// Shared .agents directory first: highest priority, agent-agnostic.
	for _, a := range enabled {
		add(a.SharedPath(startDir), "shared")
	}
	for _, a := range enabled {
		for _, dir := range a.SearchPaths(startDir) {
			add(dir, a.Name)
		}
	}
	return paths
}

// HealthCheckAll probes every adapter.
func (r *Registry) HealthCheckAll(startDir string) []Health {
	out := make([]Health, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.adapters[name].HealthCheck(startDir))
	}
	return out
}
