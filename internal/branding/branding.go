// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, then rebuild. Go's //go:embed
// bakes the values into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	HubDir      string `yaml:"hub_dir"`
	MetaDirName string `yaml:"meta_dir_name"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "skill-hub",
			DisplayName: "Skill Hub",
			Description: "Discover, deduplicate, and distribute skills across AI coding assistants",
			HomeDir:     ".skill-hub",
			EnvPrefix:   "SKILL_HUB",
			GoModule:    "github.com/skillhub-labs/skillhub",
			HubDir:      ".agents/skills",
			MetaDirName: ".skill-hub",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "skill-hub").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Skill Hub").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".skill-hub").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "SKILL_HUB").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Used by release scripts, not at runtime.
func GoModule() string { load(); return defaults.GoModule }

// HubDir returns the default hub location relative to $HOME (e.g., ".agents/skills").
func HubDir() string { load(); return defaults.HubDir }

// MetaDirName returns the sidecar metadata directory name inside the hub.
func MetaDirName() string { load(); return defaults.MetaDirName }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HUB") → "SKILL_HUB_HUB".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
