package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/skillhub-labs/skillhub/internal/scaffold"
)

var (
	createDescription string
	createLicense     string
	createDir         string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new skill directory",
	Long:  `Create <dir>/<name>/SKILL.md with valid frontmatter, ready to edit.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVarP(&createDescription, "description", "d", "", "Skill description")
	createCmd.Flags().StringVar(&createLicense, "license", "", "License identifier")
	createCmd.Flags().StringVar(&createDir, "dir", "", "Output directory (default: ./skills)")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	outputDir := createDir
	if outputDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		outputDir = filepath.Join(cwd, "skills")
	}

	data := scaffold.NewData(args[0], createDescription, createLicense)
	skillFile, err := scaffold.Generate(data, outputDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", skillFile)
	return nil
}
