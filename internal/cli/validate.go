package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/skill"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>...",
	Short: "Validate SKILL.md files against the frontmatter schema",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failures := 0

	for _, path := range args {
		result, err := skill.ValidateFile(path)
		if err != nil {
			return fmt.Errorf("validating %s: %w", path, err)
		}

		if result.Valid && len(result.Issues) == 0 {
			fmt.Fprintf(out, "%s: OK\n", path)
			continue
		}

		if result.Valid {
			fmt.Fprintf(out, "%s: OK (with warnings)\n", path)
		} else {
			fmt.Fprintf(out, "%s: INVALID\n", path)
			failures++
		}
		for _, issue := range result.Issues {
			loc := issue.Path
			if loc == "" {
				loc = "/"
			}
			fmt.Fprintf(out, "  %s: %s\n", loc, issue.Message)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d file(s) failed validation", failures)
	}
	return nil
}
