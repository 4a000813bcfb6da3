// Package ingredient provides name normalization and the expiring-ingredient
// universe used for all set operations in the allocator.
package ingredient

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the matching key for an ingredient name: lower-cased,
// diacritics stripped, runs of whitespace collapsed to a single space, and
// trimmed. Two names refer to the same ingredient iff their normalized forms
// are equal.
func Normalize(name string) string {
	lowered := strings.ToLower(name)
	stripped := stripDiacritics(lowered)
	return strings.Join(strings.Fields(stripped), " ")
}

// stripDiacritics decomposes to NFD and drops combining marks, so that
// "crème" and "creme" compare equal.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// NormalizeAll maps a list of free-text names to the set of their normalized
// keys, dropping entries that normalize to the empty string.
func NormalizeAll(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		if key := Normalize(name); key != "" {
			set[key] = true
		}
	}
	return set
}
