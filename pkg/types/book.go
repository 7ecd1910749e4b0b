// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for curated-reads.
// Book is the candidate record every stage passes around; MatchTarget and the
// shelf types describe what a curation slot wants; ReadingList backs the
// user-facing lists.
package types

import (
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Book is one book record from the metadata provider. Books are read-only
// inputs to ranking: no stage mutates a Book it did not create.
type Book struct {
	// ID is the provider identifier (ISBN-13 when the provider has one).
	ID string `json:"id" yaml:"id"`

	// Title is the book title as returned by the provider.
	Title string `json:"title" yaml:"title"`

	// Subtitle is the long-form title, when the provider supplies one.
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`

	// Authors lists the authors in provider order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// ISBN13 is the 13-digit ISBN, when known.
	ISBN13 string `json:"isbn13,omitempty" yaml:"isbn13,omitempty"`

	// PublishedYear is the publication year; zero means unknown.
	PublishedYear Year `json:"publishedYear,omitempty" yaml:"published_year,omitempty"`

	// PageCount is the number of pages; zero means unknown.
	PageCount int `json:"pageCount,omitempty" yaml:"page_count,omitempty"`

	// Publisher is the publisher name.
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Description is the provider overview or synopsis.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Subjects are provider subject headings.
	Subjects []string `json:"subjects,omitempty" yaml:"subjects,omitempty"`

	// CoverImageURL is the cover image reference. Empty means no cover.
	CoverImageURL string `json:"coverImageUrl,omitempty" yaml:"cover_image_url,omitempty"`

	// Source identifies the provider (e.g. "isbndb").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// HasCover reports whether the book carries a cover image reference.
func (b Book) HasCover() bool {
	return strings.TrimSpace(b.CoverImageURL) != ""
}

// Year is a publication year that tolerates loose payloads: it decodes from a
// JSON or YAML number or string, and anything unparseable decodes to zero.
type Year int

// ParseYear coerces v into a year. Strings are parsed the way a lenient
// integer parser reads them: optional sign, then leading digits, with any
// trailing text ignored ("2019-05-01" is 2019). Floats are truncated.
// Zero, absent, and unparseable values report ok=false.
func ParseYear(v any) (Year, bool) {
	var n int
	switch t := v.(type) {
	case nil:
		return 0, false
	case Year:
		n = int(t)
	case int:
		n = t
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	case string:
		parsed, ok := leadingInt(t)
		if !ok {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n == 0 {
		return 0, false
	}
	return Year(n), true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnmarshalJSON accepts a number, a numeric string, or null.
func (y *Year) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*y = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		*y, _ = ParseYear(unquoted)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		*y, _ = ParseYear(f)
		return nil
	}
	*y = 0
	return nil
}

// UnmarshalYAML accepts a scalar number or string.
func (y *Year) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		*y = 0
		return nil
	}
	*y, _ = ParseYear(node.Value)
	return nil
}

// ListVisibility controls who may see a reading list.
type ListVisibility string

const (
	VisibilityPrivate  ListVisibility = "private"
	VisibilityUnlisted ListVisibility = "unlisted"
	VisibilityPublic   ListVisibility = "public"
)

// ListBook is the subset of a Book stored on a reading list.
type ListBook struct {
	ID            string   `json:"id" yaml:"id" validate:"required"`
	Title         string   `json:"title" yaml:"title" validate:"required"`
	Authors       []string `json:"authors" yaml:"authors"`
	CoverImageURL string   `json:"coverImageUrl,omitempty" yaml:"cover_image_url,omitempty"`
	PublishedYear Year     `json:"publishedYear,omitempty" yaml:"published_year,omitempty"`
}

// ListBookFrom copies the list-relevant fields of b.
func ListBookFrom(b Book) ListBook {
	return ListBook{
		ID:            b.ID,
		Title:         b.Title,
		Authors:       b.Authors,
		CoverImageURL: b.CoverImageURL,
		PublishedYear: b.PublishedYear,
	}
}

// ReadingList is a user-curated, ordered collection of books.
type ReadingList struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Slug        string         `json:"slug" yaml:"slug"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Emoji       string         `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Visibility  ListVisibility `json:"visibility" yaml:"visibility"`
	Books       []ListBook     `json:"books" yaml:"books"`
	CreatedAt   string         `json:"createdAt" yaml:"created_at"`
	UpdatedAt   string         `json:"updatedAt" yaml:"updated_at"`
}

// BookIDs returns the IDs of the list's books in list order.
func (l ReadingList) BookIDs() []string {
	ids := make([]string, len(l.Books))
	for i, b := range l.Books {
		ids[i] = b.ID
	}
	return ids
}
