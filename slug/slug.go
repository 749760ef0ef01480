// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package slug turns titles into URL path segments.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var replacements = strings.NewReplacer("&", " and ", "@", " at ", "%", " percent ")

// Make lower-cases s, folds accents (é → e), spells out a few symbols and
// joins the remaining ASCII letters and digits with single hyphens.
// It returns "" when nothing usable is left.
func Make(s string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		replacements.Replace(s),
	)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// WithFallback is Make, but returns fallback when the result is empty
func WithFallback(s, fallback string) string {
	if out := Make(s); out != "" {
		return out
	}
	return fallback
}
