package cli

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/remote"
)

var (
	repoBranch string
	repoPath   string
)

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage remote skill repositories",
}

var repoAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a remote skill repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if !remote.ValidateURL(url) {
			return fmt.Errorf("invalid repository URL %q", url)
		}

		cfg := config.Load()
		for _, r := range cfg.Repositories {
			if r.URL == url {
				return fmt.Errorf("repository %s already configured", url)
			}
		}

		cfg.Repositories = append(cfg.Repositories, config.RepositoryConfig{
			URL:     url,
			Enabled: true,
			Branch:  repoBranch,
			Path:    repoPath,
		})
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added repository %s (branch %s)\n", url, repoBranch)
		return nil
	},
}

var repoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if len(cfg.Repositories) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No repositories configured.")
			return nil
		}

		mgr := remote.NewManager(filepath.Join(cfg.MetaDir(), "repos"))
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "URL\tBRANCH\tENABLED\tLAST SYNC\tSKILLS")
		for _, r := range cfg.Repositories {
			lastSync, skills := "never", 0
			if meta := mgr.LoadMetadata(r.URL); meta != nil {
				if meta.LastSyncAt != "" {
					lastSync = meta.LastSyncAt
				}
				skills = len(meta.SkillsImported)
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%d\n", r.URL, r.Branch, r.Enabled, lastSync, skills)
		}
		return w.Flush()
	},
}

var repoRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a configured repository",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		kept := cfg.Repositories[:0]
		found := false
		for _, r := range cfg.Repositories {
			if r.URL == args[0] {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		if !found {
			return fmt.Errorf("repository %s not configured", args[0])
		}
		cfg.Repositories = kept
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed repository %s\n", args[0])
		return nil
	},
}

var repoUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Clone or update all enabled repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		repos := cfg.EnabledRepositories()
		if len(repos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No enabled repositories.")
			return nil
		}

		mgr := remote.NewManager(filepath.Join(cfg.MetaDir(), "repos"))
		failures := 0
		for _, r := range repos {
			if err := mgr.CloneOrUpdate(r); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: FAILED (%v)\n", r.URL, err)
				failures++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", r.URL, mgr.CommitHash(r.URL))
		}
		if failures > 0 {
			return fmt.Errorf("%d repository update(s) failed", failures)
		}
		return nil
	},
}

func init() {
	repoAddCmd.Flags().StringVar(&repoBranch, "branch", "main", "Branch to track")
	repoAddCmd.Flags().StringVar(&repoPath, "path", "", "Subdirectory within the repository to scan")
	repoCmd.AddCommand(repoAddCmd)
	repoCmd.AddCommand(repoListCmd)
	repoCmd.AddCommand(repoRemoveCmd)
	repoCmd.AddCommand(repoUpdateCmd)
	rootCmd.AddCommand(repoCmd)
}
