// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package isbndb

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/curated-reads/pkg/types"
)

// source is the Book.Source value for records from this provider.
const source = "isbndb"

// ISBNdb v2 JSON structures. Field types are loose because the API is
// inconsistent across records: dates and page counts arrive as strings or
// numbers and descriptions under several keys.
type searchResponse struct {
	Total int       `json:"total"`
	Books []rawBook `json:"books"`
}

type bookResponse struct {
	Book *rawBook `json:"book"`
}

type rawBook struct {
	Title         string      `json:"title"`
	TitleLong     string      `json:"title_long"`
	Authors       []string    `json:"authors"`
	ISBN          looseString `json:"isbn"`
	ISBN13        looseString `json:"isbn13"`
	DatePublished looseString `json:"date_published"`
	Pages         looseInt    `json:"pages"`
	Publisher     looseString `json:"publisher"`
	Overview      string      `json:"overview"`
	Synopsis      string      `json:"synopsis"`
	Synopsys      string      `json:"synopsys"`
	Image         string      `json:"image"`
	Subjects      []string    `json:"subjects"`
}

// looseString decodes a JSON string or number as its text. Anything else
// decodes to the empty string.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			*s = ""
			return nil
		}
		*s = looseString(v)
		return nil
	}
	if data[0] == '-' || (data[0] >= '0' && data[0] <= '9') {
		*s = looseString(data)
		return nil
	}
	*s = ""
	return nil
}

// looseInt decodes a JSON number or a numeric string. Anything else,
// including fractional strings, decodes to the leading integer or zero.
type looseInt int

func (n *looseInt) UnmarshalJSON(data []byte) error {
	var s looseString
	_ = s.UnmarshalJSON(data)
	*n = looseInt(leadingInt(string(s)))
	return nil
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// publishedYear returns the first four-digit run of a date string.
func publishedYear(date string) types.Year {
	m := yearPattern.FindString(date)
	if m == "" {
		return 0
	}
	y, _ := types.ParseYear(m)
	return y
}

// toBook coerces a raw provider record into a Book. It never fails: every
// missing or malformed field becomes its zero value.
func toBook(raw rawBook) types.Book {
	b := types.Book{
		Title:         raw.Title,
		Subtitle:      raw.TitleLong,
		Authors:       raw.Authors,
		ISBN13:        string(raw.ISBN13),
		PublishedYear: publishedYear(string(raw.DatePublished)),
		PageCount:     int(raw.Pages),
		Publisher:     string(raw.Publisher),
		Subjects:      raw.Subjects,
		CoverImageURL: raw.Image,
		Source:        source,
	}
	if b.Authors == nil {
		b.Authors = []string{}
	}

	switch {
	case raw.ISBN13 != "":
		b.ID = string(raw.ISBN13)
	case raw.ISBN != "":
		b.ID = string(raw.ISBN)
	default:
		b.ID = raw.Title
	}

	switch {
	case raw.Overview != "":
		b.Description = raw.Overview
	case raw.Synopsis != "":
		b.Description = raw.Synopsis
	default:
		b.Description = raw.Synopsys
	}
	return b
}

// parseSearch decodes a search response body.
func parseSearch(body []byte) ([]types.Book, error) {
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, err
	}
	books := make([]types.Book, 0, len(sr.Books))
	for _, raw := range sr.Books {
		books = append(books, toBook(raw))
	}
	return books, nil
}

// parseLookup decodes a single-book response body. found is false when the
// body has no book.
func parseLookup(body []byte) (types.Book, bool, error) {
	var br bookResponse
	if err := json.Unmarshal(body, &br); err != nil {
		return types.Book{}, false, err
	}
	if br.Book == nil {
		return types.Book{}, false, nil
	}
	return toBook(*br.Book), true, nil
}
