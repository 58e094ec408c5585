// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"
)

// Fallback is returned when nothing usable remains of the input
const Fallback = "tag"

// Make lowercases text, turns whitespace and underscore runs into a single
// hyphen and keeps only letters (any script), digits and hyphens.
// Repeated hyphens collapse and leading/trailing ones are trimmed.
func Make(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := true // suppresses leading hyphens
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
			lastHyphen = false
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return Fallback
	}
	return s
}
