package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/config"
	syncengine "github.com/skillhub-labs/skillhub/internal/sync"
)

var discoverJSON bool

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover skills across all enabled agents",
	Long: `Scan every enabled agent's skill directories (shared, project-local,
and global) plus configured remote repositories, and report the merged
registry with provenance and conflicts.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	engine := syncengine.NewEngine(cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	reg := engine.Discover(cwd)

	if discoverJSON {
		data, err := json.MarshalIndent(reg.Export(), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling registry: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if reg.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No skills discovered.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSOURCES\tDESCRIPTION")
	for _, entry := range reg.Export() {
		desc := entry.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", entry.Name, len(entry.Sources), desc)
	}
	w.Flush()

	if reg.HasConflicts() {
		conflicts := reg.Conflicts()
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d skill(s) have conflicting content:\n", len(conflicts))
		for _, name := range reg.ConflictNames() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s:\n", name)
			for _, src := range conflicts[name] {
				fmt.Fprintf(cmd.OutOrStdout(), "    %s (%s)\n", src.Path, src.Agent)
			}
		}
	}
	return nil
}
