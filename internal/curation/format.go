// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/curated-reads/pkg/types"
)

// FormatRanked writes a ranked candidate list as a table.
func FormatRanked(ranked []Scored, w io.Writer) {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No candidates found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %-5s  %-6s  %s\n",
		"Rank", "Title", "Authors", "Year", "Cover", "Score", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, s := range ranked {
		score := fmt.Sprintf("%d", s.Score)
		if s.Disqualified {
			score += "!"
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4s  %-5s  %-6s  %s\n",
			i+1, truncate(s.Book.Title, 50), formatAuthors(s.Book.Authors),
			formatYear(s.Book.PublishedYear), yesNo(s.Book.HasCover()), score, s.Book.ID)
	}
	fmt.Fprintf(w, "\n%d candidates\n", len(ranked))
}

// FormatBooks writes books as a numbered table.
func FormatBooks(books []types.Book, w io.Writer) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %s\n", "#", "Title", "Authors", "Year", "ID")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, b := range books {
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4s  %s\n",
			i+1, truncate(b.Title, 50), formatAuthors(b.Authors), formatYear(b.PublishedYear), b.ID)
	}
}

// FormatShelves writes each shelf with its books and missing items.
func FormatShelves(shelves []types.CuratedShelf, w io.Writer) {
	for i, s := range shelves {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%s)\n", s.Title, s.Key)
		if s.Subtitle != "" {
			fmt.Fprintln(w, s.Subtitle)
		}
		FormatBooks(s.Books, w)
		if len(s.Missing) > 0 {
			fmt.Fprintf(w, "missing: %s\n", strings.Join(s.Missing, "; "))
		}
	}
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func formatYear(y types.Year) string {
	if y == 0 {
		return ""
	}
	return fmt.Sprintf("%d", y)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
