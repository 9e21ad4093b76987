package models

import (
	"regexp"
	"strings"
)

var whitespaceRunRE = regexp.MustCompile(`\s+`)

// NormalizeKey canonicalizes a setting display name for fuzzy matching
// across BIOS vendors: lower-case, trimmed, en/em-dashes unified to hyphens,
// underscores and hyphens turned into spaces, whitespace runs collapsed.
func NormalizeKey(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "–", "-")
	s = strings.ReplaceAll(s, "—", "-")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return whitespaceRunRE.ReplaceAllString(s, " ")
}
