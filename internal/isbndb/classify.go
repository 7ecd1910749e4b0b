// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package isbndb

import (
	"regexp"
	"strings"
)

// IdentifierType classifies a book identifier.
type IdentifierType int

const (
	TypeUnknown IdentifierType = iota
	TypeISBN13
	TypeISBN10
)

func (t IdentifierType) String() string {
	switch t {
	case TypeISBN13:
		return "isbn13"
	case TypeISBN10:
		return "isbn10"
	default:
		return "unknown"
	}
}

var (
	isbn13Pattern = regexp.MustCompile(`^97[89]\d{10}$`)
	isbn10Pattern = regexp.MustCompile(`^\d{9}[\dX]$`)
	separators    = strings.NewReplacer("-", "", " ", "")
)

// Classify determines the identifier type and returns the normalized form.
// Hyphens and spaces are stripped and a trailing x is upper-cased. Only
// identifiers with a valid check digit are recognized; anything else is
// TypeUnknown with the trimmed input returned unchanged.
func Classify(identifier string) (IdentifierType, string) {
	identifier = strings.TrimSpace(identifier)
	compact := strings.ToUpper(separators.Replace(identifier))

	switch {
	case isbn13Pattern.MatchString(compact) && validISBN13(compact):
		return TypeISBN13, compact
	case isbn10Pattern.MatchString(compact) && validISBN10(compact):
		return TypeISBN10, compact
	}
	return TypeUnknown, identifier
}

// ToISBN13 converts an ISBN-10 to its 978-prefixed ISBN-13. Valid ISBN-13
// input is returned normalized. It reports false for anything else.
func ToISBN13(identifier string) (string, bool) {
	t, n := Classify(identifier)
	switch t {
	case TypeISBN13:
		return n, true
	case TypeISBN10:
		body := "978" + n[:9]
		return body + string(rune('0'+isbn13CheckDigit(body))), true
	}
	return "", false
}

func validISBN10(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		var d int
		if s[i] == 'X' {
			d = 10
		} else {
			d = int(s[i] - '0')
		}
		sum += d * (10 - i)
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	return isbn13CheckDigit(s[:12]) == int(s[12]-'0')
}

// isbn13CheckDigit computes the check digit for the first twelve digits.
func isbn13CheckDigit(body string) int {
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}
