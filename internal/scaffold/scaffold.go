// Package scaffold generates new skill directories from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/skillhub-labs/skillhub/internal/skill"
)

//go:embed templates
var templateFS embed.FS

// Data holds the template variables for a new skill.
type Data struct {
	Name        string
	Description string
	License     string
	Year        int
}

// NewData builds template data with derived defaults.
func NewData(name, description, license string) *Data {
	if description == "" {
		description = fmt.Sprintf("A skill named %s", name)
	}
	return &Data{
		Name:        name,
		Description: description,
		License:     license,
		Year:        time.Now().Year(),
	}
}

// Generate creates <outputDir>/<name>/SKILL.md from the embedded template.
// The skill name must be valid, and the target must not already exist.
func Generate(data *Data, outputDir string) (string, error) {
	if !skill.ValidateName(data.Name) {
		return "", fmt.Errorf("invalid skill name %q: must be lowercase alphanumeric with single hyphens, 1-64 chars", data.Name)
	}
	if !skill.ValidateDescription(data.Description) {
		return "", fmt.Errorf("invalid description: must be 1-1024 characters")
	}

	skillDir := filepath.Join(outputDir, data.Name)
	if _, err := os.Stat(skillDir); err == nil {
		return "", fmt.Errorf("directory %s already exists", skillDir)
	}

	tmplBytes, err := templateFS.ReadFile("templates/SKILL.md.tmpl")
	if err != nil {
		return "", fmt.Errorf("loading skill template: %w", err)
	}
	tmpl, err := template.New("SKILL.md").Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing skill template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering skill template: %w", err)
	}

	if err := os.MkdirAll(skillDir, 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", skillDir, err)
	}
	skillFile := filepath.Join(skillDir, "SKILL.md")
	if err := os.WriteFile(skillFile, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", skillFile, err)
	}

	return skillFile, nil
}
