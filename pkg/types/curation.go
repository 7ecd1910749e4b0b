// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// MatchTarget is what one curation slot is looking for. Built per request and
// never persisted.
type MatchTarget struct {
	// Title is the desired title. Empty disables title matching.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Author is the desired author. Empty disables author matching.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// RequireCover disqualifies candidates without a cover image.
	RequireCover bool `json:"requireCover,omitempty" yaml:"require_cover,omitempty"`

	// ISBNOverride pins a known edition. When it resolves to a record with a
	// cover, ranking is skipped entirely.
	ISBNOverride string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
}

// Query returns the free-text search string for the target: title and
// author joined by a space, trimmed.
func (t MatchTarget) Query() string {
	return strings.TrimSpace(t.Title + " " + t.Author)
}

// ShelfItem is one editorial entry on a shelf: the title and author that
// drive a search-and-rank request.
type ShelfItem struct {
	Title  string   `json:"title" yaml:"title" validate:"required"`
	Author string   `json:"author" yaml:"author"`
	Slug   string   `json:"slug,omitempty" yaml:"slug,omitempty"`
	Reason string   `json:"reason,omitempty" yaml:"reason,omitempty"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// ISBN is an optional hard override for problematic titles or editions.
	ISBN string `json:"isbn,omitempty" yaml:"isbn,omitempty"`
}

// Target converts the item into a MatchTarget.
func (i ShelfItem) Target(requireCover bool) MatchTarget {
	return MatchTarget{
		Title:        i.Title,
		Author:       i.Author,
		RequireCover: requireCover,
		ISBNOverride: i.ISBN,
	}
}

// ShelfSection is an editorial shelf definition.
type ShelfSection struct {
	Key      string      `json:"key" yaml:"key" validate:"required"`
	Title    string      `json:"title" yaml:"title" validate:"required"`
	Subtitle string      `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Limit    int         `json:"limit,omitempty" yaml:"limit,omitempty" validate:"gte=0"`
	Items    []ShelfItem `json:"items" yaml:"items" validate:"dive"`
}

// CuratedShelf is a ShelfSection after every item was resolved to a book.
type CuratedShelf struct {
	Key      string `json:"key" yaml:"key"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Books    []Book `json:"books" yaml:"books"`

	// Missing lists the item titles that produced no acceptable book.
	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
}
