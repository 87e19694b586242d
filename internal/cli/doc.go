// Package cli wires the cobra command tree for the skill-hub binary.
package cli
