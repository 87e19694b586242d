// Package registry discovers SKILL.md documents across prioritized search
// paths, merges same-named skills, and flags content conflicts.
package registry
