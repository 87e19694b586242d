// Package skill defines the skill document model: YAML frontmatter parsing,
// field validation, checksums, and provenance records.
package skill
