// Package adapters maps supported AI coding assistants to their on-disk
// skill directory conventions. Each tool is a row of path configuration,
// not a distinct implementation.
package adapters

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/platform"
)

// Spec holds the path conventions for one tool.
type Spec struct {
	GlobalPath     string // default global directory, ~-relative (e.g., "~/.cursor")
	ProjectDirName string // project-local directory name (e.g., ".cursor")
}

// SharedDirName is the agent-agnostic shared directory searched at the git
// root. Skills in <root>/.agents/skills/ are visible to every tool.
const SharedDirName = ".agents"

// specs is the full table of supported tools.
var specs = map[string]Spec{
	"antigravity": {GlobalPath: "~/.gemini/antigravity", ProjectDirName: ".agent"},
	"claude":      {GlobalPath: "~/.claude", ProjectDirName: ".claude"},
	"codex":       {GlobalPath: "~/.codex", ProjectDirName: ".codex"},
	"copilot":     {GlobalPath: "~/.copilot", ProjectDirName: ".github"},
	"cursor":      {GlobalPath: "~/.cursor", ProjectDirName: ".cursor"},
	"gemini":      {GlobalPath: "~/.gemini", ProjectDirName: ".gemini"},
	"opencode":    {GlobalPath: "~/.config/opencode", ProjectDirName: ".opencode"},
	"qoder":       {GlobalPath: "~/.qoder", ProjectDirName: ".qoder"},
	"windsurf":    {GlobalPath: "~/.codeium/windsurf", ProjectDirName: ".windsurf"},
}

// Names returns all supported tool names, sorted.
func Names() []string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the Spec for a tool name.
func Lookup(name string) (Spec, bool) {
	s, ok := specs[name]
	return s, ok
}

// Adapter binds a tool's path conventions to its runtime configuration.
type Adapter struct {
	Name string
	Spec Spec

	cfg  config.AgentConfig
	sync config.SyncOptions
}

// New builds an adapter for a known tool name.
func New(name string, cfg config.AgentConfig, sync config.SyncOptions) (*Adapter, error) {
	spec, ok := specs[name]
	if !ok {
		return nil, fmt.Errorf("unknown agent %q", name)
	}
	return &Adapter{Name: name, Spec: spec, cfg: cfg, sync: sync}, nil
}

// Enabled reports whether the adapter participates in discovery and push.
func (a *Adapter) Enabled() bool {
	return a.cfg.Enabled
}

// GlobalPath returns the tool's global skills base directory, honoring a
// per-agent override from configuration.
func (a *Adapter) GlobalPath() string {
	if a.cfg.GlobalPath != "" {
		return expandHome(a.cfg.GlobalPath)
	}
	return expandHome(a.Spec.GlobalPath)
}

// ProjectPaths returns existing project-local base directories, looking at
// the git root and the starting directory.
func (a *Adapter) ProjectPaths(startDir string) []string {
	var dirs []string
	if root := platform.FindGitRoot(startDir); root != "" {
		dirs = append(dirs, root)
	}
	dirs = append(dirs, startDir)

	var paths []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		candidate := filepath.Join(dir, a.Spec.ProjectDirName)
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		if _, err := os.Stat(candidate); err == nil {
			paths = append(paths, candidate)
		}
	}
	return paths
}

// SharedPath returns the shared .agents directory at the git root when its
// skills/ subdirectory exists, or "".
func (a *Adapter) SharedPath(startDir string) string {
	root := platform.FindGitRoot(startDir)
	if root == "" {
		return ""
	}
	shared := filepath.Join(root, SharedDirName)
	if _, err := os.Stat(filepath.Join(shared, "skills")); err != nil {
		return ""
	}
	return shared
}

// SearchPaths returns every base directory to search for this tool's
// skills, in priority order: shared, project-local, global.
func (a *Adapter) SearchPaths(startDir string) []string {
	var paths []string
	if shared := a.SharedPath(startDir); shared != "" {
		paths = append(paths, shared)
	}
	paths = append(paths, a.ProjectPaths(startDir)...)

	global := a.GlobalPath()
	if _, err := os.Stat(global); err == nil || a.sync.CreateDirectories {
		paths = append(paths, global)
	}
	return paths
}

// WriteSkill writes a skill document into the tool's global directory at
// skills/<name>/SKILL.md. Failures are logged and reported via the return
// value so batch pushes keep going.
func (a *Adapter) WriteSkill(name, content string) bool {
	skillDir := filepath.Join(a.GlobalPath(), "skills", name)
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		slog.Error("failed to create skill directory", "agent", a.Name, "skill", name, "error", err)
		return false
	}

	skillFile := filepath.Join(skillDir, "SKILL.md")
	if err := platform.WriteFileAtomic(skillFile, []byte(content), 0644); err != nil {
		slog.Error("failed to write skill", "agent", a.Name, "skill", name, "error", err)
		return false
	}

	slog.Info("wrote skill", "agent", a.Name, "skill", name, "path", skillFile)
	return true
}

// Health summarizes an adapter's filesystem state for diagnostics.
type Health struct {
	Agent              string   `json:"agent"`
	Enabled            bool     `json:"enabled"`
	GlobalPath         string   `json:"global_path"`
	GlobalPathExists   bool     `json:"global_path_exists"`
	GlobalPathWritable bool     `json:"global_path_writable"`
	ProjectPaths       []string `json:"project_paths"`
	SharedPath         string   `json:"shared_path,omitempty"`
}

// HealthCheck probes the adapter's directories.
func (a *Adapter) HealthCheck(startDir string) Health {
	global := a.GlobalPath()
	h := Health{
		Agent:        a.Name,
		Enabled:      a.Enabled(),
		GlobalPath:   global,
		ProjectPaths: a.ProjectPaths(startDir),
		SharedPath:   a.SharedPath(startDir),
	}
	if _, err := os.Stat(global); err == nil {
		h.GlobalPathExists = true
		h.GlobalPathWritable = platform.IsWritable(global)
	}
	return h
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
