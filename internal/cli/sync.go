package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/config"
	syncengine "github.com/skillhub-labs/skillhub/internal/sync"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Pull skills from all agents into the hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncOp(cmd, func(e *syncengine.Engine, dir string) *syncengine.Result {
			return e.Pull(dir)
		})
	},
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push hub skills out to all agents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncOp(cmd, func(e *syncengine.Engine, dir string) *syncengine.Result {
			return e.Push()
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Bi-directional sync: pull then push",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncOp(cmd, func(e *syncengine.Engine, dir string) *syncengine.Result {
			return e.Sync(dir)
		})
	},
}

func init() {
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(syncCmd)
}

func runSyncOp(cmd *cobra.Command, op func(*syncengine.Engine, string) *syncengine.Result) error {
	cfg := config.Load()
	engine := syncengine.NewEngine(cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	result := op(engine, cwd)
	printSyncResult(cmd, result)
	return nil
}

func printSyncResult(cmd *cobra.Command, result *syncengine.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Operation: %s\n", result.Operation)
	fmt.Fprintf(out, "  Synced:    %d\n", result.Synced)
	fmt.Fprintf(out, "  Skipped:   %d\n", result.Skipped)
	fmt.Fprintf(out, "  Conflicts: %d\n", result.Conflicts)
	if len(result.Errors) > 0 {
		fmt.Fprintf(out, "  Errors (%d):\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Fprintf(out, "    - %s\n", msg)
		}
	}
}
