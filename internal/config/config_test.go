package config

import (
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if !cfg.Sync.Incremental {
		t.Error("incremental should default on")
	}
	if !cfg.Sync.CheckPermissions {
		t.Error("check_permissions should default on")
	}
	if !cfg.Sync.CreateDirectories {
		t.Error("create_directories should default on")
	}
	if cfg.Sync.RemotePriority {
		t.Error("remote_priority should default off")
	}
	if cfg.Version == "" {
		t.Error("version should be set")
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("SKILL_HUB_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	cfg := Load()
	if !cfg.Sync.Incremental || cfg.Sync.RemotePriority {
		t.Errorf("Load without a file = %+v, want defaults", cfg.Sync)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("SKILL_HUB_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))

	cfg := Default()
	cfg.HubPath = "/custom/hub"
	cfg.Sync.Incremental = false
	cfg.Sync.RemotePriority = true
	cfg.Agents = map[string]AgentConfig{
		"cursor": {Enabled: false, GlobalPath: "/custom/cursor"},
	}
	cfg.Repositories = []RepositoryConfig{
		{URL: "https://github.com/org/skills.git", Enabled: true, Branch: "main", Path: "skills"},
	}

	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	got := Load()
	if got.HubPath != "/custom/hub" {
		t.Errorf("hub_path = %q", got.HubPath)
	}
	if got.Sync.Incremental || !got.Sync.RemotePriority {
		t.Errorf("sync = %+v", got.Sync)
	}
	cursor := got.Agent("cursor")
	if cursor.Enabled || cursor.GlobalPath != "/custom/cursor" {
		t.Errorf("cursor agent = %+v", cursor)
	}
	if len(got.Repositories) != 1 || got.Repositories[0].URL != "https://github.com/org/skills.git" {
		t.Errorf("repositories = %+v", got.Repositories)
	}
	if got.Repositories[0].Branch != "main" || !got.Repositories[0].Enabled {
		t.Errorf("repository fields = %+v", got.Repositories[0])
	}
}

func TestAgentDefaultsToEnabled(t *testing.T) {
	cfg := Default()
	a := cfg.Agent("claude")
	if !a.Enabled {
		t.Error("unconfigured agents default to enabled")
	}
	if a.GlobalPath != "" {
		t.Errorf("GlobalPath = %q, want empty", a.GlobalPath)
	}
}

func TestHubEnvOverride(t *testing.T) {
	t.Setenv("SKILL_HUB_HUB", "/env/hub")
	cfg := Default()
	cfg.HubPath = "/config/hub"
	if got := cfg.Hub(); got != "/env/hub" {
		t.Errorf("Hub = %q, want env override", got)
	}
}

func TestHubConfigPath(t *testing.T) {
	t.Setenv("SKILL_HUB_HUB", "")
	cfg := Default()
	cfg.HubPath = "/config/hub"
	if got := cfg.Hub(); got != "/config/hub" {
		t.Errorf("Hub = %q, want config value", got)
	}
}

func TestHubDefaultsToAgentsSkills(t *testing.T) {
	t.Setenv("SKILL_HUB_HUB", "")
	cfg := Default()
	hub := cfg.Hub()
	if filepath.Base(hub) != "skills" || filepath.Base(filepath.Dir(hub)) != ".agents" {
		t.Errorf("Hub = %q, want <home>/.agents/skills", hub)
	}
}

func TestMetaDirLivesInsideHub(t *testing.T) {
	t.Setenv("SKILL_HUB_HUB", "/env/hub")
	cfg := Default()
	if got := cfg.MetaDir(); got != filepath.Join("/env/hub", ".skill-hub") {
		t.Errorf("MetaDir = %q", got)
	}
}

func TestEnabledRepositories(t *testing.T) {
	cfg := Default()
	cfg.Repositories = []RepositoryConfig{
		{URL: "https://a.git", Enabled: true},
		{URL: "https://b.git", Enabled: false},
		{URL: "https://c.git", Enabled: true},
	}
	got := cfg.EnabledRepositories()
	if len(got) != 2 || got[0].URL != "https://a.git" || got[1].URL != "https://c.git" {
		t.Errorf("EnabledRepositories = %+v", got)
	}
}
