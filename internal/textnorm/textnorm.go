// Package textnorm narrows full-width digits so address lookups never miss on
// character width alone.
package textnorm

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var narrowDigits = runes.Map(func(r rune) rune {
	switch {
	case r >= '０' && r <= '９':
		return '0' + (r - '０')
	case isDash(r):
		return '-'
	}
	return r
})

// Dash-like code points typed by IMEs in postal codes and block numbers.
// The katakana prolonged sound mark is left alone because it is a real
// character in place names.
func isDash(r rune) bool {
	switch r {
	case '‐', '‑', '‒', '–', '—', '―', '−', '－':
		return true
	}
	return false
}

// NormalizeDigits maps full-width digits (U+FF10–U+FF19) and dash variants to
// ASCII. Every other character passes through unchanged.
func NormalizeDigits(s string) string {
	out, _, err := transform.String(narrowDigits, s)
	if err != nil {
		return s
	}
	return out
}

// DigitsOnly normalizes s and drops every non-digit character.
func DigitsOnly(s string) string {
	s = NormalizeDigits(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
