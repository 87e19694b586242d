package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/hub"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the hub and default configuration",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	store := hub.NewStore(cfg.Hub())
	if err := store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized hub at %s\n", store.Root())

	if _, err := os.Stat(config.FilePath()); os.IsNotExist(err) {
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", config.FilePath())
	}
	return nil
}
