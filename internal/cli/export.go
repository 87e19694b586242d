package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/config"
	syncengine "github.com/skillhub-labs/skillhub/internal/sync"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the discovered registry as JSON",
	Long: `Run a discovery pass and export the full registry (name, description,
per-source provenance, checksum) as JSON for machine consumption.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	engine := syncengine.NewEngine(cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	data, err := json.MarshalIndent(engine.Discover(cwd).Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}

	if exportOutput != "" {
		if err := os.WriteFile(exportOutput, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported registry to %s\n", exportOutput)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
