package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skillhub-labs/skillhub/internal/adapters"
	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/hub"
	"github.com/skillhub-labs/skillhub/internal/skill"
)

// testConfig disables every agent except the named ones, pointing each at
// its own temp global directory, and roots the hub in a temp directory too.
func testConfig(t *testing.T, agentNames ...string) (*config.Config, map[string]string) {
	t.Helper()
	t.Setenv("SKILL_HUB_HUB", "")

	cfg := config.Default()
	cfg.HubPath = filepath.Join(t.TempDir(), "hub")
	cfg.Agents = make(map[string]config.AgentConfig)
	for _, name := range adapters.Names() {
		cfg.Agents[name] = config.AgentConfig{Enabled: false}
	}

	dirs := make(map[string]string)
	for _, name := range agentNames {
		dir := t.TempDir()
		cfg.Agents[name] = config.AgentConfig{Enabled: true, GlobalPath: dir}
		dirs[name] = dir
	}
	return cfg, dirs
}

func writeAgentSkill(t *testing.T, agentDir, name, body string) {
	t.Helper()
	dir := filepath.Join(agentDir, "skills", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\nname: " + name + "\ndescription: A test skill\n---\n" + body
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPullSyncsDiscoveredSkills(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")
	writeAgentSkill(t, dirs["cursor"], "test-skill", "body\n")

	e := NewEngine(cfg)
	result := e.Pull(t.TempDir())

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if result.Operation != OpPull {
		t.Errorf("operation = %q", result.Operation)
	}
	if result.Synced != 1 || result.Skipped != 0 {
		t.Errorf("synced/skipped = %d/%d, want 1/0", result.Synced, result.Skipped)
	}

	content, err := e.Store().Read("test-skill")
	if err != nil {
		t.Fatal(err)
	}
	want := "---\nname: test-skill\ndescription: A test skill\n---\nbody\n"
	if content != want {
		t.Errorf("hub content = %q", content)
	}
}

func TestPullIncrementalSkipsUnchanged(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")
	writeAgentSkill(t, dirs["cursor"], "test-skill", "body\n")

	e := NewEngine(cfg)
	if first := e.Pull(t.TempDir()); first.Synced != 1 {
		t.Fatalf("first pull synced = %d", first.Synced)
	}

	second := e.Pull(t.TempDir())
	if second.Synced != 0 || second.Skipped != 1 {
		t.Errorf("second pull synced/skipped = %d/%d, want 0/1", second.Synced, second.Skipped)
	}
}

func TestPullResyncsModifiedSkill(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")
	writeAgentSkill(t, dirs["cursor"], "test-skill", "v1\n")

	e := NewEngine(cfg)
	e.Pull(t.TempDir())

	writeAgentSkill(t, dirs["cursor"], "test-skill", "v2\n")
	result := e.Pull(t.TempDir())
	if result.Synced != 1 {
		t.Errorf("synced = %d, want 1 after modification", result.Synced)
	}
}

func TestPullWithIncrementalOffAlwaysWrites(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")
	cfg.Sync.Incremental = false
	writeAgentSkill(t, dirs["cursor"], "test-skill", "body\n")

	e := NewEngine(cfg)
	e.Pull(t.TempDir())
	second := e.Pull(t.TempDir())
	if second.Synced != 1 || second.Skipped != 0 {
		t.Errorf("synced/skipped = %d/%d, want 1/0", second.Synced, second.Skipped)
	}
}

func TestPullCountsConflicts(t *testing.T) {
	cfg, dirs := testConfig(t, "claude", "cursor")
	writeAgentSkill(t, dirs["claude"], "dup-skill", "Version A\n")
	writeAgentSkill(t, dirs["cursor"], "dup-skill", "Version B\n")

	e := NewEngine(cfg)
	result := e.Pull(t.TempDir())
	if result.Conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", result.Conflicts)
	}
	if result.Synced != 1 {
		t.Errorf("synced = %d, want 1 (first occurrence wins)", result.Synced)
	}
}

func TestPushWritesHubSkillsToEnabledAdapters(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")

	store := hub.NewStore(cfg.Hub())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	meta := skill.Metadata{Name: "hub-skill", Description: "A test skill"}
	sk := skill.New(meta, "hub body\n", skill.Source{Path: "/x", Agent: "remote"})
	if err := store.Write(sk, OpPull); err != nil {
		t.Fatal(err)
	}

	e := NewEngine(cfg)
	result := e.Push()

	if len(result.Errors) != 0 {
		t.Fatalf("errors: %v", result.Errors)
	}
	if result.Synced != 1 {
		t.Errorf("synced = %d, want 1", result.Synced)
	}

	written := filepath.Join(dirs["cursor"], "skills", "hub-skill", "SKILL.md")
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("skill not written to adapter dir: %v", err)
	}
	if string(data) != "hub body\n" {
		t.Errorf("written content = %q", data)
	}
}

func TestPushCountsFailedWritesAsSkipped(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")

	store := hub.NewStore(cfg.Hub())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	meta := skill.Metadata{Name: "hub-skill", Description: "A test skill"}
	if err := store.Write(skill.New(meta, "body\n", skill.Source{Path: "/x", Agent: "remote"}), OpPull); err != nil {
		t.Fatal(err)
	}

	// A file where the skills directory should go makes the write fail.
	if err := os.WriteFile(filepath.Join(dirs["cursor"], "skills"), []byte("in the way"), 0o644); err != nil {
		t.Fatal(err)
	}

	result := NewEngine(cfg).Push()
	if result.Synced != 0 || result.Skipped != 1 {
		t.Errorf("synced/skipped = %d/%d, want 0/1", result.Synced, result.Skipped)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v, want none for a failed adapter write", result.Errors)
	}
}

func TestPushWithMissingHubIsANoOp(t *testing.T) {
	cfg, _ := testConfig(t, "cursor")

	e := NewEngine(cfg)
	result := e.Push()
	if result.Synced != 0 || result.Skipped != 0 || len(result.Errors) != 0 {
		t.Errorf("push against missing hub = %+v, want empty result", result)
	}
}

func TestSyncCombinesPullAndPush(t *testing.T) {
	cfg, dirs := testConfig(t, "cursor")
	writeAgentSkill(t, dirs["cursor"], "test-skill", "body\n")

	e := NewEngine(cfg)
	result := e.Sync(t.TempDir())

	if result.Operation != OpBidirectional {
		t.Errorf("operation = %q", result.Operation)
	}
	// One pull write into the hub plus one push write back out.
	if result.Synced != 2 {
		t.Errorf("synced = %d, want 2", result.Synced)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors: %v", result.Errors)
	}
}

func TestDiscoverWithNoEnabledAgents(t *testing.T) {
	cfg, _ := testConfig(t)

	e := NewEngine(cfg)
	r := e.Discover(t.TempDir())
	if r.Len() != 0 {
		t.Errorf("Len = %d, want 0", r.Len())
	}
}
