package skill

import (
	"regexp"
	"unicode/utf8"
)

// namePattern matches lowercase alphanumeric segments joined by single
// hyphens: no leading/trailing hyphen, no consecutive hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateName reports whether name is a valid skill name:
// 1-64 characters, lowercase alphanumeric with single hyphen separators.
func ValidateName(name string) bool {
	if len(name) < 1 || len(name) > 64 {
		return false
	}
	return namePattern.MatchString(name)
}

// ValidateDescription reports whether description is 1-1024 characters.
// The limit counts characters, not bytes, so multibyte text is measured the
// way the frontmatter schema's maxLength measures it.
func ValidateDescription(description string) bool {
	n := utf8.RuneCountInString(description)
	return n >= 1 && n <= 1024
}
