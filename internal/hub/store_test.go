package hub

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/skillhub-labs/skillhub/internal/skill"
)

func testSkill(name, body string) *skill.Skill {
	meta := skill.Metadata{Name: name, Description: "A test skill"}
	source := skill.Source{Path: "/tmp/" + name + "/SKILL.md", Agent: "cursor", DiscoveredAt: time.Now()}
	return skill.New(meta, body, source)
}

func TestInitCreatesHubAndMetaDir(t *testing.T) {
	root := filepath.Join(t.TempDir(), "hub")
	s := NewStore(root)

	if s.Exists() {
		t.Fatal("hub should not exist before Init")
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	if !s.Exists() {
		t.Error("hub should exist after Init")
	}
	if _, err := os.Stat(filepath.Join(root, ".skill-hub")); err != nil {
		t.Errorf("metadata directory missing: %v", err)
	}
}

func TestWriteAndRead(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	sk := testSkill("my-skill", "skill body\n")
	if err := s.Write(sk, "pull"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Read("my-skill")
	if err != nil {
		t.Fatal(err)
	}
	if got != "skill body\n" {
		t.Errorf("Read = %q", got)
	}
	if s.Checksum("my-skill") != skill.Checksum("skill body\n") {
		t.Error("checksum mismatch")
	}
}

func TestChecksumOfMissingEntryIsEmpty(t *testing.T) {
	s := NewStore(t.TempDir())
	if s.Checksum("missing") != "" {
		t.Error("missing entry should have empty checksum")
	}
}

func TestListExcludesMetaDirAndBareDirs(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	if err := s.Write(testSkill("beta-skill", "b\n"), "pull"); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(testSkill("alpha-skill", "a\n"), "pull"); err != nil {
		t.Fatal(err)
	}
	// A directory without SKILL.md is not an entry.
	if err := os.MkdirAll(filepath.Join(s.Root(), "not-a-skill"), 0o755); err != nil {
		t.Fatal(err)
	}

	names := s.List()
	if len(names) != 2 {
		t.Fatalf("List = %v, want 2 entries", names)
	}
	if names[0] != "alpha-skill" || names[1] != "beta-skill" {
		t.Errorf("List = %v, want sorted order", names)
	}
}

func TestWriteRecordsSidecarMetadata(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	sk := testSkill("my-skill", "body\n")
	if err := s.Write(sk, "pull"); err != nil {
		t.Fatal(err)
	}

	m, err := s.ReadMeta("my-skill")
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "my-skill" || m.Description != "A test skill" {
		t.Errorf("meta identity = %s / %s", m.Name, m.Description)
	}
	if m.Checksum != sk.Checksum {
		t.Error("sidecar checksum mismatch")
	}
	if len(m.Sources) != 1 || m.Sources[0].Agent != "cursor" {
		t.Errorf("sidecar sources = %+v", m.Sources)
	}
	if m.LastSyncAt == "" {
		t.Error("last_sync_at should be set")
	}
	if _, err := time.Parse(time.RFC3339, m.LastSyncAt); err != nil {
		t.Errorf("last_sync_at is not RFC3339: %v", err)
	}
	if len(m.SyncHistory) != 1 || m.SyncHistory[0].Operation != "pull" {
		t.Errorf("sync history = %+v", m.SyncHistory)
	}
}

func TestWriteAppendsSyncHistory(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	if err := s.Write(testSkill("my-skill", "v1\n"), "pull"); err != nil {
		t.Fatal(err)
	}
	if err := s.Write(testSkill("my-skill", "v2\n"), "pull"); err != nil {
		t.Fatal(err)
	}

	m, err := s.ReadMeta("my-skill")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.SyncHistory) != 2 {
		t.Errorf("history entries = %d, want 2", len(m.SyncHistory))
	}

	got, _ := s.Read("my-skill")
	if got != "v2\n" {
		t.Errorf("content = %q, want latest write", got)
	}
}

func TestListOnMissingHub(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "never-created"))
	if names := s.List(); names != nil {
		t.Errorf("List = %v, want nil", names)
	}
}
