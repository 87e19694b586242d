package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/adapters"
	"github.com/skillhub-labs/skillhub/internal/config"
	"github.com/skillhub-labs/skillhub/internal/hub"
)

var doctorJSON bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the hub and every agent adapter",
	RunE:  runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	store := hub.NewStore(cfg.Hub())

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	checks := adapters.NewRegistry(cfg).HealthCheckAll(cwd)

	if doctorJSON {
		report := struct {
			Hub       string            `json:"hub"`
			HubExists bool              `json:"hub_exists"`
			Git       bool              `json:"git_available"`
			Agents    []adapters.Health `json:"agents"`
		}{
			Hub:       store.Root(),
			HubExists: store.Exists(),
			Git:       gitAvailable(),
			Agents:    checks,
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling health report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Hub: %s", store.Root())
	if store.Exists() {
		fmt.Fprintln(out, " (initialized)")
	} else {
		fmt.Fprintln(out, " (missing, run 'skill-hub init')")
	}
	if gitAvailable() {
		fmt.Fprintln(out, "Git: available")
	} else {
		fmt.Fprintln(out, "Git: not found (remote repositories unavailable)")
	}

	fmt.Fprintln(out, "\nAgents:")
	for _, h := range checks {
		status := "disabled"
		if h.Enabled {
			switch {
			case h.GlobalPathWritable:
				status = "ok"
			case h.GlobalPathExists:
				status = "read-only"
			default:
				status = "not installed"
			}
		}
		fmt.Fprintf(out, "  %-12s %-14s %s\n", h.Agent, status, h.GlobalPath)
		for _, p := range h.ProjectPaths {
			fmt.Fprintf(out, "  %-12s %-14s %s\n", "", "project", p)
		}
		if h.SharedPath != "" {
			fmt.Fprintf(out, "  %-12s %-14s %s\n", "", "shared", h.SharedPath)
		}
	}
	return nil
}

func gitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}
