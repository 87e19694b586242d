package registry

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/skillhub-labs/skillhub/internal/skill"
)

// skillFileName is the document name that marks a skill directory.
const skillFileName = "SKILL.md"

// SearchPath pairs a directory to scan with the origin label recorded in
// provenance (a tool name, "shared", or "remote").
type SearchPath struct {
	Dir    string
	Origin string
}

// Discover scans the given search paths in order and returns the resulting
// registry. The order encodes priority: the first occurrence of a name wins
// its content. Missing directories, missing skills/ subdirectories, and
// unparseable files are skipped without aborting the run. Zero search paths
// yield an empty registry.
func Discover(paths []SearchPath) *Registry {
	r := NewRegistry()
	r.Scan(paths)
	return r
}

// Scan discovers the given search paths into an existing registry,
// preserving whatever priority its current contents already hold.
func (r *Registry) Scan(paths []SearchPath) {
	for _, sp := range paths {
		if _, err := os.Stat(sp.Dir); err != nil {
			slog.Debug("search path does not exist", "path", sp.Dir)
			continue
		}
		scanDirectory(r, sp.Dir, sp.Origin)
	}
}

// scanDirectory finds skills/**/SKILL.md beneath base and feeds each file
// into the registry.
func scanDirectory(r *Registry, base, origin string) {
	skillsDir := filepath.Join(base, "skills")
	if _, err := os.Stat(skillsDir); err != nil {
		slog.Debug("skills directory not found", "path", skillsDir)
		return
	}

	matches, err := doublestar.Glob(os.DirFS(skillsDir), "**/"+skillFileName)
	if err != nil {
		slog.Warn("scanning skills directory", "path", skillsDir, "error", err)
		return
	}

	for _, rel := range matches {
		processSkillFile(r, filepath.Join(skillsDir, filepath.FromSlash(rel)), origin)
	}
}

// processSkillFile parses one SKILL.md and registers it. Parse failures are
// warnings, not errors.
func processSkillFile(r *Registry, path, origin string) {
	meta, _, ok := skill.ParseFile(path)
	if !ok {
		slog.Warn("failed to parse skill file", "path", path)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read skill file", "path", path, "error", err)
		return
	}

	// Soft naming-convention check: the directory holding SKILL.md should
	// carry the skill's name.
	if dirName := filepath.Base(filepath.Dir(path)); dirName != meta.Name {
		slog.Warn("directory name does not match skill name",
			"dir", dirName, "skill", meta.Name, "path", path)
	}

	source := skill.Source{
		Path:         path,
		Agent:        origin,
		DiscoveredAt: time.Now(),
	}
	r.AddSkill(*meta, string(content), source)
	slog.Debug("discovered skill", "skill", meta.Name, "agent", origin, "path", path)
}
