// Package remote clones and updates remote skill repositories via the git
// CLI and scans them for skills.
package remote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/platform"
)

// Timeouts for shelled-out git commands.
const (
	cloneTimeout = 5 * time.Minute
	fetchTimeout = time.Minute
	resetTimeout = 30 * time.Second
	queryTimeout = 10 * time.Second
)

// Metadata tracks sync state for one remote repository, stored as meta.json
// inside the repository cache directory.
type Metadata struct {
	URL            string   `json:"url"`
	Branch         string   `json:"branch"`
	CommitHash     string   `json:"commit_hash,omitempty"`
	LastSyncAt     string   `json:"last_sync_at,omitempty"`
	SkillsImported []string `json:"skills_imported"`
	SyncCount      int      `json:"sync_count"`
	LastError      string   `json:"last_error,omitempty"`
}

// Manager caches cloned repositories under a local directory, one
// subdirectory per repository URL hash.
type Manager struct {
	cacheDir string
}

// NewManager returns a manager caching repositories under cacheDir.
func NewManager(cacheDir string) *Manager {
	return &Manager{cacheDir: cacheDir}
}

// ValidateURL reports whether url looks like a git remote.
func ValidateURL(url string) bool {
	for _, prefix := range []string{"https://", "http://", "git@", "ssh://"} {
		if strings.HasPrefix(url, prefix) {
			return true
		}
	}
	return false
}

// RepoDir returns the local cache directory for a repository URL.
func (m *Manager) RepoDir(url string) string {
	return filepath.Join(m.cacheDir, repoHash(url))
}

// repoHash derives a stable directory name from a repository URL.
func repoHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}

// CloneOrUpdate clones the repository if absent, otherwise fetches and
// resets to the configured branch. Errors are recorded into the repository
// metadata before being returned.
func (m *Manager) CloneOrUpdate(repo config.RepositoryConfig) error {
	if err := ensureGit(); err != nil {
		m.recordError(repo, err)
		return err
	}

	repoDir := m.RepoDir(repo.URL)
	branch := repo.Branch
	if branch == "" {
		branch = "main"
	}

	var err error
	if _, statErr := os.Stat(filepath.Join(repoDir, ".git")); statErr == nil {
		err = m.update(repo.URL, branch, repoDir)
	} else {
		err = m.clone(repo.URL, branch, repoDir)
	}
	if err != nil {
		m.recordError(repo, err)
		return err
	}
	return nil
}

// clone performs a shallow clone into repoDir.
func (m *Manager) clone(url, branch, repoDir string) error {
	slog.Info("cloning repository", "url", url, "branch", branch)

	if err := os.MkdirAll(filepath.Dir(repoDir), 0755); err != nil {
		return fmt.Errorf("creating repository cache directory: %w", err)
	}

	out, err := runGit(cloneTimeout, "clone", "--depth", "1", "--branch", branch, url, repoDir)
	if err != nil {
		return fmt.Errorf("git clone %s: %w\n%s", url, err, out)
	}
	return nil
}

// update fetches the branch and hard-resets the working tree. A failed
// fetch falls back to a fresh clone.
func (m *Manager) update(url, branch, repoDir string) error {
	slog.Info("updating repository", "url", url, "branch", branch)

	if out, err := runGit(fetchTimeout, "-C", repoDir, "fetch", "origin", branch); err != nil {
		slog.Warn("git fetch failed, re-cloning", "url", url, "error", err, "output", out)
		if err := os.RemoveAll(repoDir); err != nil {
			return fmt.Errorf("removing stale repository %s: %w", repoDir, err)
		}
		return m.clone(url, branch, repoDir)
	}

	if out, err := runGit(resetTimeout, "-C", repoDir, "reset", "--hard", "origin/"+branch); err != nil {
		return fmt.Errorf("git reset %s: %w\n%s", url, err, out)
	}
	return nil
}

// CommitHash returns the repository's current HEAD, or "".
func (m *Manager) CommitHash(url string) string {
	repoDir := m.RepoDir(url)
	if _, err := os.Stat(filepath.Join(repoDir, ".git")); err != nil {
		return ""
	}
	out, err := runGit(queryTimeout, "-C", repoDir, "rev-parse", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// LoadMetadata reads the repository's meta.json, or nil when absent or
// unreadable.
func (m *Manager) LoadMetadata(url string) *Metadata {
	data, err := os.ReadFile(m.metaPath(url))
	if err != nil {
		return nil
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		slog.Warn("failed to parse repository metadata", "url", url, "error", err)
		return nil
	}
	return &meta
}

// SaveMetadata writes the repository's meta.json atomically.
func (m *Manager) SaveMetadata(meta *Metadata) error {
	path := m.metaPath(meta.URL)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating repository directory: %w", err)
	}
	if meta.SkillsImported == nil {
		meta.SkillsImported = []string{}
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling repository metadata: %w", err)
	}
	return platform.WriteFileAtomic(path, data, 0644)
}

// recordError persists a failure into the repository metadata; best effort.
func (m *Manager) recordError(repo config.RepositoryConfig, cause error) {
	meta := m.LoadMetadata(repo.URL)
	if meta == nil {
		branch := repo.Branch
		if branch == "" {
			branch = "main"
		}
		meta = &Metadata{URL: repo.URL, Branch: branch}
	}
	meta.LastError = cause.Error()
	meta.LastSyncAt = time.Now().Format(time.RFC3339)
	if err := m.SaveMetadata(meta); err != nil {
		slog.Warn("failed to save repository metadata", "url", repo.URL, "error", err)
	}
}

func (m *Manager) metaPath(url string) string {
	return filepath.Join(m.RepoDir(url), "meta.json")
}

// ensureGit verifies the git executable is available.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git executable not found: %w", err)
	}
	return nil
}

// runGit executes a git command with a timeout and returns combined output.
func runGit(timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return string(out), fmt.Errorf("git %s timed out after %s", args[0], timeout)
	}
	return string(out), err
}
