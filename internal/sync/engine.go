// Package sync reconciles discovered skills against the hub store and
// distributes hub skills back out to agent directories.
package sync

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/skillhub-labs/skillhub/internal/adapters"
	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/hub"
	"github.com/skillhub-labs/skillhub/internal/platform"
	"github.com/skillhub-labs/skillhub/internal/registry"
	"github.com/skillhub-labs/skillhub/internal/remote"
	"github.com/skillhub-labs/skillhub/internal/skill"
)

// Operation names reported in results.
const (
	OpPull          = "pull"
	OpPush          = "push"
	OpBidirectional = "bi-directional"
)

// Result summarizes one sync operation. Per-item failures land in Errors;
// the operation itself always completes.
type Result struct {
	Operation string    `json:"operation"`
	Synced    int       `json:"synced_count"`
	Skipped   int       `json:"skipped_count"`
	Conflicts int       `json:"conflict_count"`
	Errors    []string  `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}

func newResult(operation string) *Result {
	return &Result{Operation: operation, Errors: []string{}, Timestamp: time.Now()}
}

// Engine drives pull, push, and bidirectional syncs.
type Engine struct {
	cfg      *config.Config
	store    *hub.Store
	adapters *adapters.Registry
	remotes  *remote.Manager
}

// NewEngine builds an engine from configuration.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    hub.NewStore(cfg.Hub()),
		adapters: adapters.NewRegistry(cfg),
		remotes:  remote.NewManager(filepath.Join(cfg.MetaDir(), "repos")),
	}
}

// Store exposes the hub store for CLI queries.
func (e *Engine) Store() *hub.Store { return e.store }

// Adapters exposes the adapter registry for CLI queries.
func (e *Engine) Adapters() *adapters.Registry { return e.adapters }

// Discover builds a registry from all enabled agents' search paths and, when
// repositories are configured, from their cached clones. Remote skills are
// queued after local ones unless the remote_priority option is set.
func (e *Engine) Discover(startDir string) *registry.Registry {
	localPaths := e.adapters.SearchPaths(startDir)

	remoteSkills := e.collectRemoteSkills()

	r := registry.NewRegistry()
	if e.cfg.Sync.RemotePriority {
		addAll(r, remoteSkills)
		r.Scan(localPaths)
	} else {
		r.Scan(localPaths)
		addAll(r, remoteSkills)
	}
	return r
}

// Pull discovers skills and writes new or changed ones into the hub.
// With incremental mode on (the default), entries whose checksum already
// matches are skipped.
func (e *Engine) Pull(startDir string) *Result {
	result := newResult(OpPull)

	if err := e.store.Init(); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result
	}
	if e.cfg.Sync.CheckPermissions && !platform.IsWritable(e.store.Root()) {
		result.Errors = append(result.Errors, fmt.Sprintf("hub directory %s is not writable", e.store.Root()))
		return result
	}

	reg := e.Discover(startDir)

	for _, name := range reg.Names() {
		sk := reg.Get(name)
		synced, err := e.syncSkillToHub(sk)
		if err != nil {
			msg := fmt.Sprintf("error syncing skill '%s': %v", name, err)
			slog.Error("sync failed", "skill", name, "error", err)
			result.Errors = append(result.Errors, msg)
			continue
		}
		if synced {
			result.Synced++
		} else {
			result.Skipped++
		}
	}

	result.Conflicts = len(reg.Conflicts())
	return result
}

// Push hands every hub skill to every enabled adapter.
func (e *Engine) Push() *Result {
	result := newResult(OpPush)

	if !e.store.Exists() {
		slog.Warn("hub directory not found", "path", e.store.Root())
		return result
	}

	enabled := e.adapters.Enabled()
	for _, name := range e.store.List() {
		content, err := e.store.Read(name)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("error reading hub skill '%s': %v", name, err))
			continue
		}
		// Failed writes count as skipped; WriteSkill already logged the
		// cause. Errors is reserved for failures reading the hub itself.
		for _, a := range enabled {
			if a.WriteSkill(name, content) {
				result.Synced++
			} else {
				result.Skipped++
			}
		}
	}

	return result
}

// Sync runs a pull followed by a push and sums the counts. The conflict
// count comes from the pull phase only.
func (e *Engine) Sync(startDir string) *Result {
	pull := e.Pull(startDir)
	push := e.Push()

	result := newResult(OpBidirectional)
	result.Synced = pull.Synced + push.Synced
	result.Skipped = pull.Skipped + push.Skipped
	result.Conflicts = pull.Conflicts
	result.Errors = append(append([]string{}, pull.Errors...), push.Errors...)
	return result
}

// syncSkillToHub writes one skill into the hub unless incremental mode
// finds an identical entry. Returns whether the skill was written.
func (e *Engine) syncSkillToHub(sk *skill.Skill) (bool, error) {
	if e.cfg.Sync.Incremental {
		if existing := e.store.Checksum(sk.Name()); existing != "" && existing == sk.Checksum {
			slog.Debug("skipping unchanged skill", "skill", sk.Name())
			return false, nil
		}
	}
	if err := e.store.Write(sk, OpPull); err != nil {
		return false, err
	}
	slog.Info("synced skill to hub", "skill", sk.Name())
	return true, nil
}

// collectRemoteSkills updates each enabled repository clone and scans it.
// Repository failures are logged into the repo metadata and skipped.
func (e *Engine) collectRemoteSkills() []*skill.Skill {
	var out []*skill.Skill
	for _, repo := range e.cfg.EnabledRepositories() {
		if err := e.remotes.CloneOrUpdate(repo); err != nil {
			slog.Error("repository sync failed", "url", repo.URL, "error", err)
			continue
		}

		skills := remote.ScanRepository(e.remotes.RepoDir(repo.URL), repo)
		out = append(out, skills...)

		e.recordRepoSync(repo, skills)
	}
	return out
}

// recordRepoSync updates a repository's metadata after a successful scan.
func (e *Engine) recordRepoSync(repo config.RepositoryConfig, skills []*skill.Skill) {
	meta := e.remotes.LoadMetadata(repo.URL)
	if meta == nil {
		branch := repo.Branch
		if branch == "" {
			branch = "main"
		}
		meta = &remote.Metadata{URL: repo.URL, Branch: branch}
	}
	meta.CommitHash = e.remotes.CommitHash(repo.URL)
	meta.LastSyncAt = time.Now().Format(time.RFC3339)
	meta.SyncCount++
	meta.LastError = ""
	meta.SkillsImported = meta.SkillsImported[:0]
	for _, sk := range skills {
		meta.SkillsImported = append(meta.SkillsImported, sk.Name())
	}
	if err := e.remotes.SaveMetadata(meta); err != nil {
		slog.Warn("failed to save repository metadata", "url", repo.URL, "error", err)
	}
}

// addAll feeds standalone skills into a registry.
func addAll(r *registry.Registry, skills []*skill.Skill) {
	for _, sk := range skills {
		r.AddSkill(sk.Metadata, sk.Content, sk.Sources[0])
	}
}
