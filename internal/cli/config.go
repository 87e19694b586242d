package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/adapters"
	"github.com/skillhub-labs/skillhub/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config file: %s\n", config.FilePath())
		fmt.Fprintf(out, "Hub:         %s\n", cfg.Hub())
		fmt.Fprintf(out, "Sync:\n")
		fmt.Fprintf(out, "  incremental:        %t\n", cfg.Sync.Incremental)
		fmt.Fprintf(out, "  check_permissions:  %t\n", cfg.Sync.CheckPermissions)
		fmt.Fprintf(out, "  create_directories: %t\n", cfg.Sync.CreateDirectories)
		fmt.Fprintf(out, "  remote_priority:    %t\n", cfg.Sync.RemotePriority)
		fmt.Fprintf(out, "Agents:\n")
		for _, name := range adapters.Names() {
			a := cfg.Agent(name)
			fmt.Fprintf(out, "  %-12s enabled=%t", name, a.Enabled)
			if a.GlobalPath != "" {
				fmt.Fprintf(out, " global_path=%s", a.GlobalPath)
			}
			fmt.Fprintln(out)
		}
		if len(cfg.Repositories) > 0 {
			fmt.Fprintf(out, "Repositories:\n")
			for _, r := range cfg.Repositories {
				fmt.Fprintf(out, "  %s (branch %s, enabled=%t)\n", r.URL, r.Branch, r.Enabled)
			}
		}
		return nil
	},
}

var configAgentCmd = &cobra.Command{
	Use:   "agent <name> <enabled|disabled>",
	Short: "Enable or disable an agent adapter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, state := args[0], args[1]
		if _, ok := adapters.Lookup(name); !ok {
			return fmt.Errorf("unknown agent %q (supported: %v)", name, adapters.Names())
		}
		enabled, err := parseEnabled(state)
		if err != nil {
			return err
		}

		cfg := config.Load()
		if cfg.Agents == nil {
			cfg.Agents = make(map[string]config.AgentConfig)
		}
		a := cfg.Agent(name)
		a.Enabled = enabled
		cfg.Agents[name] = a

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Agent %s is now %s\n", name, state)
		return nil
	},
}

var configSyncCmd = &cobra.Command{
	Use:   "sync <option> <true|false>",
	Short: "Set a sync option (incremental, check_permissions, create_directories, remote_priority)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid boolean %q", args[1])
		}

		cfg := config.Load()
		switch args[0] {
		case "incremental":
			cfg.Sync.Incremental = value
		case "check_permissions":
			cfg.Sync.CheckPermissions = value
		case "create_directories":
			cfg.Sync.CreateDirectories = value
		case "remote_priority":
			cfg.Sync.RemotePriority = value
		default:
			return fmt.Errorf("unknown sync option %q", args[0])
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set sync.%s = %t\n", args[0], value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configAgentCmd)
	configCmd.AddCommand(configSyncCmd)
	rootCmd.AddCommand(configCmd)
}

func parseEnabled(s string) (bool, error) {
	switch s {
	case "enabled":
		return true, nil
	case "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("expected 'enabled' or 'disabled', got %q", s)
	}
}
