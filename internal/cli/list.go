package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/hub"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills stored in the hub",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry represents a hub skill for display.
type listEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Checksum    string `json:"checksum"`
	LastSyncAt  string `json:"last_sync_at"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	store := hub.NewStore(cfg.Hub())

	if !store.Exists() {
		fmt.Fprintln(cmd.OutOrStdout(), "Hub not initialized. Run 'skill-hub init' first.")
		return nil
	}

	names := store.List()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No skills in the hub yet.")
		return nil
	}

	var entries []listEntry
	for _, name := range names {
		entry := listEntry{Name: name}
		if meta, err := store.ReadMeta(name); err == nil {
			entry.Description = meta.Description
			entry.Checksum = meta.Checksum
			entry.LastSyncAt = meta.LastSyncAt
		}
		entries = append(entries, entry)
	}

	if listJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling hub entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLAST SYNC\tDESCRIPTION")
	for _, e := range entries {
		desc := e.Description
		if len(desc) > 60 {
			desc = desc[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.LastSyncAt, desc)
	}
	return w.Flush()
}
