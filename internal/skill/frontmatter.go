package skill

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
)

// ParseError describes a malformed skill document: missing frontmatter
// delimiters, non-mapping YAML, or missing/invalid required fields.
type ParseError struct {
	msg string
	err error
}

func (e *ParseError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *ParseError) Unwrap() error { return e.err }

func parseErrorf(err error, format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...), err: err}
}

// frontmatterPattern captures the YAML block between two "---" lines at the
// start of the document, and the remaining body.
var frontmatterPattern = regexp.MustCompile(`(?s)\A---[ \t\r]*\n(.*?)\n---[ \t\r]*\n(.*)\z`)

// Parse splits a SKILL.md document into validated metadata and body.
//
// The document must start with a YAML frontmatter block delimited by "---"
// lines. The block must decode to a mapping carrying string name and
// description fields that pass validation. An optional metadata mapping has
// its values coerced to strings. All failures return a *ParseError.
func Parse(content string) (*Metadata, string, error) {
	m := frontmatterPattern.FindStringSubmatch(content)
	if m == nil {
		return nil, "", parseErrorf(nil, "missing or invalid YAML frontmatter")
	}
	frontmatter, body := m[1], m[2]

	var raw map[string]any
	if err := yaml.Unmarshal([]byte(frontmatter), &raw); err != nil {
		return nil, "", parseErrorf(err, "invalid YAML")
	}
	if raw == nil {
		return nil, "", parseErrorf(nil, "frontmatter must be a YAML mapping")
	}

	name, ok := raw["name"].(string)
	if !ok || name == "" {
		return nil, "", parseErrorf(nil, "missing or non-string required field: name")
	}
	description, ok := raw["description"].(string)
	if !ok || description == "" {
		return nil, "", parseErrorf(nil, "missing or non-string required field: description")
	}

	if !ValidateName(name) {
		return nil, "", parseErrorf(nil,
			"invalid skill name %q: must be lowercase alphanumeric with single hyphens, 1-64 chars", name)
	}
	if !ValidateDescription(description) {
		return nil, "", parseErrorf(nil,
			"invalid description: must be 1-1024 characters, got %d", utf8.RuneCountInString(description))
	}

	meta := Metadata{
		Name:          name,
		Description:   description,
		License:       stringify(raw["license"]),
		Compatibility: stringify(raw["compatibility"]),
	}

	if rawMeta, present := raw["metadata"]; present && rawMeta != nil {
		mm, ok := rawMeta.(map[string]any)
		if !ok {
			return nil, "", parseErrorf(nil, "metadata field must be a mapping")
		}
		meta.Metadata = make(map[string]string, len(mm))
		for k, v := range mm {
			// Non-string values are stringified, not rejected.
			meta.Metadata[k] = stringify(v)
		}
	}

	return &meta, body, nil
}

// ParseFile reads and parses a SKILL.md document from disk. I/O and parse
// failures are reported as ok=false rather than an error, so one bad file
// never aborts a batch discovery run.
func ParseFile(path string) (*Metadata, string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", false
	}
	meta, body, err := Parse(string(data))
	if err != nil {
		return nil, "", false
	}
	return meta, body, true
}

// Format renders metadata and body back into SKILL.md document form.
// Parsing the result yields the same metadata and body.
func Format(meta *Metadata, body string) (string, error) {
	var sb strings.Builder
	sb.WriteString("---\n")

	// Marshal field by field so key order is stable across runs.
	sb.WriteString(fmt.Sprintf("name: %s\n", yamlScalar(meta.Name)))
	sb.WriteString(fmt.Sprintf("description: %s\n", yamlScalar(meta.Description)))
	if meta.License != "" {
		sb.WriteString(fmt.Sprintf("license: %s\n", yamlScalar(meta.License)))
	}
	if meta.Compatibility != "" {
		sb.WriteString(fmt.Sprintf("compatibility: %s\n", yamlScalar(meta.Compatibility)))
	}
	if len(meta.Metadata) > 0 {
		sb.WriteString("metadata:\n")
		keys := make([]string, 0, len(meta.Metadata))
		for k := range meta.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", yamlScalar(k), yamlScalar(meta.Metadata[k])))
		}
	}
	sb.WriteString("---\n")
	sb.WriteString(body)
	return sb.String(), nil
}

// yamlScalar renders a single scalar value as YAML, without the trailing
// newline yaml.Marshal appends.
func yamlScalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return s
	}
	return strings.TrimSuffix(string(out), "\n")
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
