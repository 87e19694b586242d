package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/viper"

	"github.com/skillhub-labs/skillhub/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"

	// currentVersion is written to new config files. Loading a config from
	// a different major version logs a warning but never fails.
	currentVersion = "1.0.0"
)

// SyncOptions enumerates every recognized sync behavior flag.
type SyncOptions struct {
	Incremental       bool `mapstructure:"incremental" yaml:"incremental"`
	CheckPermissions  bool `mapstructure:"check_permissions" yaml:"check_permissions"`
	CreateDirectories bool `mapstructure:"create_directories" yaml:"create_directories"`
	RemotePriority    bool `mapstructure:"remote_priority" yaml:"remote_priority"`
}

// AgentConfig carries per-agent overrides.
type AgentConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	GlobalPath string `mapstructure:"global_path" yaml:"global_path,omitempty"`
}

// RepositoryConfig describes a remote skill repository.
type RepositoryConfig struct {
	URL     string `mapstructure:"url" yaml:"url"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Branch  string `mapstructure:"branch" yaml:"branch"`
	Path    string `mapstructure:"path" yaml:"path,omitempty"`
}

// Config is the full application configuration.
type Config struct {
	Version      string                 `mapstructure:"version" yaml:"version"`
	Agents       map[string]AgentConfig `mapstructure:"agents" yaml:"agents,omitempty"`
	Repositories []RepositoryConfig     `mapstructure:"repositories" yaml:"repositories,omitempty"`
	Sync         SyncOptions            `mapstructure:"sync" yaml:"sync"`
	HubPath      string                 `mapstructure:"hub_path" yaml:"hub_path,omitempty"`
}

// Default returns a Config carrying documented defaults: incremental sync,
// permission checks, and directory creation on, remote priority off.
func Default() *Config {
	return &Config{
		Version: currentVersion,
		Sync: SyncOptions{
			Incremental:       true,
			CheckPermissions:  true,
			CreateDirectories: true,
			RemotePriority:    false,
		},
	}
}

// Dir returns the path to the config directory (~/.skill-hub/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.skill-hub/config.yaml).
func FilePath() string {
	if v := os.Getenv(branding.EnvVar("CONFIG")); v != "" {
		return v
	}
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := filepath.Dir(FilePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper and returns the parsed configuration. A missing
// config file yields defaults, never an error.
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(FilePath())
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("version", def.Version)
	v.SetDefault("sync.incremental", def.Sync.Incremental)
	v.SetDefault("sync.check_permissions", def.Sync.CheckPermissions)
	v.SetDefault("sync.create_directories", def.Sync.CreateDirectories)
	v.SetDefault("sync.remote_priority", def.Sync.RemotePriority)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			slog.Warn("failed to read config, using defaults", "path", FilePath(), "error", err)
		}
		return def
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config, using defaults", "path", FilePath(), "error", err)
		return def
	}

	checkVersion(cfg.Version)
	return &cfg
}

// Save writes the configuration to the config file.
func Save(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigType(fileType)
	v.Set("version", cfg.Version)
	v.Set("hub_path", cfg.HubPath)
	v.Set("sync.incremental", cfg.Sync.Incremental)
	v.Set("sync.check_permissions", cfg.Sync.CheckPermissions)
	v.Set("sync.create_directories", cfg.Sync.CreateDirectories)
	v.Set("sync.remote_priority", cfg.Sync.RemotePriority)

	agents := make(map[string]any, len(cfg.Agents))
	for name, a := range cfg.Agents {
		agents[name] = map[string]any{"enabled": a.Enabled, "global_path": a.GlobalPath}
	}
	v.Set("agents", agents)

	repos := make([]map[string]any, 0, len(cfg.Repositories))
	for _, r := range cfg.Repositories {
		repos = append(repos, map[string]any{
			"url": r.URL, "enabled": r.Enabled, "branch": r.Branch, "path": r.Path,
		})
	}
	v.Set("repositories", repos)

	if err := v.WriteConfigAs(FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Hub returns the hub directory: SKILL_HUB_HUB env var, then the hub_path
// config value, then ~/.agents/skills.
func (c *Config) Hub() string {
	if v := os.Getenv(branding.EnvVar("HUB")); v != "" {
		return v
	}
	if c.HubPath != "" {
		return expandHome(c.HubPath)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HubDir())
	}
	return filepath.Join(home, filepath.FromSlash(branding.HubDir()))
}

// MetaDir returns the sidecar metadata directory inside the hub.
func (c *Config) MetaDir() string {
	return filepath.Join(c.Hub(), branding.MetaDirName())
}

// Agent returns the configuration for an agent, defaulting to enabled.
func (c *Config) Agent(name string) AgentConfig {
	if a, ok := c.Agents[name]; ok {
		return a
	}
	return AgentConfig{Enabled: true}
}

// EnabledRepositories returns the enabled remote repositories.
func (c *Config) EnabledRepositories() []RepositoryConfig {
	var out []RepositoryConfig
	for _, r := range c.Repositories {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}

// checkVersion warns when the config file was written by a different major
// version of the tool.
func checkVersion(version string) {
	if version == "" {
		return
	}
	got, err := semver.NewVersion(version)
	if err != nil {
		slog.Warn("unparseable config version", "version", version)
		return
	}
	want := semver.MustParse(currentVersion)
	if got.Major() != want.Major() {
		slog.Warn("config file version differs from supported major version",
			"config", version, "supported", currentVersion)
	}
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
