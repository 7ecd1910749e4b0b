// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match normalizes titles and author names and scores how well a
// candidate book matches a target title and author.
//
// Every function here is pure and total: no I/O, no shared state, and no
// input makes them fail.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the canonical comparable form of s: lowercased, with
// every rune outside the Unicode letter, number and space classes removed,
// whitespace runs collapsed to one space, and the result trimmed.
//
// Input is composed to NFC first so "é" typed as e+U+0301 keeps its letter
// instead of degrading to "e", and the output is NFC so the function is
// idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(norm.NFC.String(s)) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(strings.Join(strings.Fields(b.String()), " "))
}
