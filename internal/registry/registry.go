package registry

import (
	"log/slog"
	"sort"

	"github.com/skillhub-labs/skillhub/internal/skill"
)

// Registry accumulates discovered skills keyed by name, plus the sources of
// any name whose occurrences diverge in content.
type Registry struct {
	skills    map[string]*skill.Skill
	conflicts map[string][]skill.Source
	order     []string // insertion order of skill names
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		skills:    make(map[string]*skill.Skill),
		conflicts: make(map[string][]skill.Source),
	}
}

// AddSkill merges an occurrence of a skill into the registry.
//
// The first occurrence of a name fixes the skill's content and checksum;
// later occurrences only append provenance. When a later occurrence's
// checksum differs from the stored one, the name is recorded as a conflict:
// the first divergence seeds the conflict list from the skill's full source
// list, and subsequent divergent occurrences append their source.
func (r *Registry) AddSkill(meta skill.Metadata, content string, source skill.Source) {
	name := meta.Name
	checksum := skill.Checksum(content)

	existing, ok := r.skills[name]
	if !ok {
		r.skills[name] = skill.New(meta, content, source)
		r.order = append(r.order, name)
		return
	}

	existing.Sources = append(existing.Sources, source)

	if existing.Checksum != checksum {
		if _, seen := r.conflicts[name]; !seen {
			// Seed from the full source list, original occurrence included.
			r.conflicts[name] = append([]skill.Source(nil), existing.Sources...)
		} else {
			r.conflicts[name] = append(r.conflicts[name], source)
		}
		slog.Warn("duplicate skill with different content",
			"skill", name, "path", source.Path, "agent", source.Agent)
	}
}

// Get returns the skill for name, or nil when not present.
func (r *Registry) Get(name string) *skill.Skill {
	return r.skills[name]
}

// Names returns all skill names in discovery order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of distinct skills.
func (r *Registry) Len() int {
	return len(r.skills)
}

// HasConflicts reports whether any name has divergent content.
func (r *Registry) HasConflicts() bool {
	return len(r.conflicts) > 0
}

// Conflicts returns the conflict map: name to every source involved.
func (r *Registry) Conflicts() map[string][]skill.Source {
	return r.conflicts
}

// ConflictNames returns the conflicting skill names, sorted.
func (r *Registry) ConflictNames() []string {
	names := make([]string, 0, len(r.conflicts))
	for name := range r.conflicts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExportEntry is the machine-readable form of one registered skill.
type ExportEntry struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Sources     []skill.Source `json:"sources"`
	Checksum    string         `json:"checksum"`
}

// Export returns the registry as a serializable list in discovery order.
func (r *Registry) Export() []ExportEntry {
	entries := make([]ExportEntry, 0, len(r.order))
	for _, name := range r.order {
		s := r.skills[name]
		entries = append(entries, ExportEntry{
			Name:        s.Name(),
			Description: s.Metadata.Description,
			Sources:     s.Sources,
			Checksum:    s.Checksum,
		})
	}
	return entries
}
