// Package textnorm canonicalizes extracted document text for substring matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes accented characters and drops the combining marks,
// upper-cases everything and collapses every whitespace run into one space.
// Leading and trailing whitespace collapse too but are not trimmed.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// transform only fails on invalid state; keep the raw text rather than lose it
		stripped = s
	}
	return collapseSpace(strings.ToUpper(stripped))
}

func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
