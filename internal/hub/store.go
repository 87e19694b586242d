// Package hub is the canonical on-disk skill store. Each skill lives at
// <hub>/<name>/SKILL.md with a JSON sidecar at <hub>/.skill-hub/<name>.json.
package hub

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/skillhub-labs/skillhub/internal/branding"
	"github.com/skillhub-labs/skillhub/internal/platform"
	"github.com/skillhub-labs/skillhub/internal/skill"
)

// skillFileName is the canonical document name inside a hub entry.
const skillFileName = "SKILL.md"

// HistoryEntry records one sync touching a hub entry.
type HistoryEntry struct {
	Timestamp string `json:"timestamp"`
	Operation string `json:"operation"`
	Source    string `json:"source,omitempty"`
}

// Meta is the sidecar metadata stored per hub entry. The JSON shape is an
// interop format and must not change.
type Meta struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Sources     []skill.Source `json:"sources"`
	Checksum    string         `json:"checksum"`
	LastSyncAt  string         `json:"last_sync_at"`
	SyncHistory []HistoryEntry `json:"sync_history"`
}

// Store reads and writes hub entries.
type Store struct {
	root    string
	metaDir string
}

// NewStore returns a store rooted at dir, with sidecars under the
// .skill-hub metadata directory.
func NewStore(dir string) *Store {
	return &Store{
		root:    dir,
		metaDir: filepath.Join(dir, branding.MetaDirName()),
	}
}

// Root returns the hub directory.
func (s *Store) Root() string { return s.root }

// Init creates the hub and metadata directories.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("creating hub directory %s: %w", s.root, err)
	}
	if err := os.MkdirAll(s.metaDir, 0755); err != nil {
		return fmt.Errorf("creating hub metadata directory %s: %w", s.metaDir, err)
	}
	return nil
}

// Exists reports whether the hub directory is present.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// List returns the names of all hub entries, sorted.
func (s *Store) List() []string {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == branding.MetaDirName() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), skillFileName)); err == nil {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Read returns the raw document for a hub entry.
func (s *Store) Read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, name, skillFileName))
	if err != nil {
		return "", fmt.Errorf("reading hub skill %s: %w", name, err)
	}
	return string(data), nil
}

// Checksum returns the stored document's checksum, or "" when the entry is
// absent.
func (s *Store) Checksum(name string) string {
	content, err := s.Read(name)
	if err != nil {
		return ""
	}
	return skill.Checksum(content)
}

// ReadMeta returns the sidecar metadata for a hub entry.
func (s *Store) ReadMeta(name string) (*Meta, error) {
	data, err := os.ReadFile(s.metaPath(name))
	if err != nil {
		return nil, fmt.Errorf("reading hub metadata for %s: %w", name, err)
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing hub metadata for %s: %w", name, err)
	}
	return &m, nil
}

// Write persists a skill into the hub and updates its sidecar, appending a
// history entry for the given operation. Both writes are atomic.
func (s *Store) Write(sk *skill.Skill, operation string) error {
	skillDir := filepath.Join(s.root, sk.Name())
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		return fmt.Errorf("creating hub entry for %s: %w", sk.Name(), err)
	}
	if err := platform.WriteFileAtomic(filepath.Join(skillDir, skillFileName), []byte(sk.Content), 0644); err != nil {
		return err
	}

	now := time.Now().Format(time.RFC3339)

	// Carry forward existing history when present.
	var history []HistoryEntry
	if existing, err := s.ReadMeta(sk.Name()); err == nil {
		history = existing.SyncHistory
	}
	history = append(history, HistoryEntry{Timestamp: now, Operation: operation})

	meta := Meta{
		Name:        sk.Name(),
		Description: sk.Metadata.Description,
		Sources:     sk.Sources,
		Checksum:    sk.Checksum,
		LastSyncAt:  now,
		SyncHistory: history,
	}
	if meta.SyncHistory == nil {
		meta.SyncHistory = []HistoryEntry{}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling hub metadata for %s: %w", sk.Name(), err)
	}
	if err := os.MkdirAll(s.metaDir, 0755); err != nil {
		return fmt.Errorf("creating hub metadata directory: %w", err)
	}
	return platform.WriteFileAtomic(s.metaPath(sk.Name()), data, 0644)
}

func (s *Store) metaPath(name string) string {
	return filepath.Join(s.metaDir, name+".json")
}
