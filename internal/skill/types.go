package skill

import "time"

// Metadata is the structured frontmatter of a SKILL.md document.
// Name and Description are always present on a parsed skill.
type Metadata struct {
	Name          string            `yaml:"name" json:"name"`
	Description   string            `yaml:"description" json:"description"`
	License       string            `yaml:"license,omitempty" json:"license,omitempty"`
	Compatibility string            `yaml:"compatibility,omitempty" json:"compatibility,omitempty"`
	Metadata      map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// Source records where a skill instance was discovered.
type Source struct {
	Path         string    `json:"path"`
	Agent        string    `json:"agent"`
	DiscoveredAt time.Time `json:"discovered_at"`
}

// Skill aggregates metadata, the full raw document, provenance, and a
// content checksum. Content and Checksum are fixed at construction;
// merging only appends to Sources.
type Skill struct {
	Metadata Metadata
	Content  string
	Sources  []Source
	Checksum string
}

// Name returns the skill name from metadata.
func (s *Skill) Name() string {
	return s.Metadata.Name
}

// New builds a Skill from a parsed document and its first source.
func New(meta Metadata, content string, source Source) *Skill {
	return &Skill{
		Metadata: meta,
		Content:  content,
		Sources:  []Source{source},
		Checksum: Checksum(content),
	}
}
