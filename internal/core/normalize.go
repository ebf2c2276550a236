package core

import "strings"

// NormalizeName canonicalizes an identifier for fuzzy matching: whitespace,
// underscores, and hyphens are stripped and the remainder is lowercased.
// "Log Date", "log_date", and "LOG-DATE" all normalize identically.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ' ', '\t', '\n', '\r', '_', '-':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}
