package remote

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/skill"
)

// ScanRepository walks a cloned repository for SKILL.md documents and
// returns them as skills with origin "remote". The search root is the
// configured subpath when set, otherwise a top-level skills/ directory,
// otherwise the whole repository. Files under .git are ignored, and
// unparseable files are skipped with a warning.
func ScanRepository(repoDir string, repo config.RepositoryConfig) []*skill.Skill {
	searchDir := repoDir
	if repo.Path != "" {
		searchDir = filepath.Join(repoDir, strings.TrimPrefix(repo.Path, "/"))
	} else if _, err := os.Stat(filepath.Join(repoDir, "skills")); err == nil {
		searchDir = filepath.Join(repoDir, "skills")
	}

	if _, err := os.Stat(searchDir); err != nil {
		slog.Warn("repository search directory does not exist", "path", searchDir)
		return nil
	}

	matches, err := doublestar.Glob(os.DirFS(searchDir), "**/SKILL.md")
	if err != nil {
		slog.Warn("scanning repository", "path", searchDir, "error", err)
		return nil
	}

	var skills []*skill.Skill
	for _, rel := range matches {
		if strings.Contains(rel, ".git/") {
			continue
		}
		path := filepath.Join(searchDir, filepath.FromSlash(rel))

		meta, _, ok := skill.ParseFile(path)
		if !ok {
			slog.Warn("failed to parse skill file", "path", path)
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("failed to read skill file", "path", path, "error", err)
			continue
		}

		skills = append(skills, skill.New(*meta, string(content), skill.Source{
			Path:         path,
			Agent:        "remote",
			DiscoveredAt: time.Now(),
		}))
		slog.Debug("found remote skill", "skill", meta.Name, "path", path)
	}

	slog.Info("scanned repository", "url", repo.URL, "skills", len(skills))
	return skills
}
