package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSkillFile(t *testing.T, base, name, body string) string {
	t.Helper()
	dir := filepath.Join(base, "skills", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: A test skill\n---\n" + body
	path := filepath.Join(dir, "SKILL.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDiscoverMergesDuplicatesAcrossPaths(t *testing.T) {
	repo1 := t.TempDir()
	repo2 := t.TempDir()
	writeSkillFile(t, repo1, "test-skill", "Version A\n")
	writeSkillFile(t, repo2, "test-skill", "Version B\n")

	r := Discover([]SearchPath{
		{Dir: repo1, Origin: "shared"},
		{Dir: repo2, Origin: "cursor"},
	})

	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
	sk := r.Get("test-skill")
	if len(sk.Sources) != 2 {
		t.Errorf("sources = %d, want 2", len(sk.Sources))
	}
	if sk.Sources[0].Agent != "shared" || sk.Sources[1].Agent != "cursor" {
		t.Errorf("source agents = %s, %s", sk.Sources[0].Agent, sk.Sources[1].Agent)
	}
	if !r.HasConflicts() {
		t.Error("divergent content must register a conflict")
	}
	if got := len(r.Conflicts()["test-skill"]); got != 2 {
		t.Errorf("conflict sources = %d, want 2", got)
	}
}

func TestDiscoverFirstPathWinsContent(t *testing.T) {
	repo1 := t.TempDir()
	repo2 := t.TempDir()
	writeSkillFile(t, repo1, "test-skill", "Version A\n")
	writeSkillFile(t, repo2, "test-skill", "Version B\n")

	r := Discover([]SearchPath{
		{Dir: repo1, Origin: "shared"},
		{Dir: repo2, Origin: "cursor"},
	})

	sk := r.Get("test-skill")
	want := "---\nname: test-skill\ndescription: A test skill\n---\nVersion A\n"
	if sk.Content != want {
		t.Errorf("content = %q, want the first path's file", sk.Content)
	}
}

func TestDiscoverNoPaths(t *testing.T) {
	r := Discover(nil)
	if r.Len() != 0 || r.HasConflicts() {
		t.Error("no search paths must yield an empty registry")
	}
}

func TestDiscoverMissingDirectoriesAreSkipped(t *testing.T) {
	repo := t.TempDir()
	writeSkillFile(t, repo, "real-skill", "body\n")

	r := Discover([]SearchPath{
		{Dir: filepath.Join(repo, "does-not-exist"), Origin: "claude"},
		{Dir: repo, Origin: "shared"},
	})

	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestDiscoverEmptySkillsDirectory(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, "skills"), 0o755); err != nil {
		t.Fatal(err)
	}

	r := Discover([]SearchPath{{Dir: repo, Origin: "shared"}})
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}

func TestDiscoverSkipsUnparseableFiles(t *testing.T) {
	repo := t.TempDir()
	writeSkillFile(t, repo, "good-skill", "body\n")

	badDir := filepath.Join(repo, "skills", "bad-skill")
	if err := os.MkdirAll(badDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "SKILL.md"), []byte("no frontmatter here"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := Discover([]SearchPath{{Dir: repo, Origin: "shared"}})
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1 (bad file skipped)", r.Len())
	}
	if r.Get("good-skill") == nil {
		t.Error("good-skill should have been discovered")
	}
}

func TestDiscoverFindsNestedSkillFiles(t *testing.T) {
	repo := t.TempDir()
	dir := filepath.Join(repo, "skills", "category", "nested-skill")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: nested-skill\ndescription: A test skill\n---\nbody\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := Discover([]SearchPath{{Dir: repo, Origin: "shared"}})
	if r.Get("nested-skill") == nil {
		t.Error("nested SKILL.md should have been discovered")
	}
}
