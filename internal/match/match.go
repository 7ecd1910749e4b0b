// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"

	"github.com/pdiddy/curated-reads/pkg/types"
)

// derivativeMarkers flag companion editions that should lose to the work
// they describe. Matched as substrings of the normalized title.
var derivativeMarkers = []string{
	"summary",
	"workbook",
	"study guide",
	"analysis",
	"companion",
	"notes",
	"quick guide",
	"review",
	"book club kit",
	"journal",
	"box set",
}

// TitleMatchScore scores candidateTitle against targetTitle with the
// default weights.
func TitleMatchScore(candidateTitle, targetTitle string) int {
	return DefaultWeights.TitleMatchScore(candidateTitle, targetTitle)
}

// AuthorMatchScore scores candidate authors against targetAuthor with the
// default weights.
func AuthorMatchScore(candidateAuthors []string, targetAuthor string) int {
	return DefaultWeights.AuthorMatchScore(candidateAuthors, targetAuthor)
}

// YearScore scores a publication year with the default weights.
func YearScore(year types.Year) int {
	return DefaultWeights.YearScore(year)
}

// TitleMatchScore returns the first applicable tier: exact match, prefix,
// substring, then token overlap. Token overlap is the share of target
// tokens (duplicates counted) present in the candidate's token set.
func (w Weights) TitleMatchScore(candidateTitle, targetTitle string) int {
	if targetTitle == "" {
		return 0
	}
	ct := Normalize(candidateTitle)
	tt := Normalize(targetTitle)
	if ct == "" || tt == "" {
		return 0
	}

	switch {
	case ct == tt:
		return w.TitleExact
	case strings.HasPrefix(ct, tt):
		return w.TitlePrefix
	case strings.Contains(ct, tt):
		return w.TitleSubstring
	}

	have := make(map[string]struct{})
	for _, tok := range strings.Split(ct, " ") {
		have[tok] = struct{}{}
	}
	targetTokens := strings.Split(tt, " ")
	hits := 0
	for _, tok := range targetTokens {
		if _, ok := have[tok]; ok {
			hits++
		}
	}

	ratio := float64(hits) / float64(len(targetTokens))
	switch {
	case ratio >= w.TokenRatioHigh:
		return w.TitleTokensHigh
	case ratio >= w.TokenRatioLow:
		return w.TitleTokensLow
	default:
		return 0
	}
}

// AuthorMatchScore rewards an exact normalized author match over a partial
// one, where partial means either string contains the other. An author that
// normalizes to nothing is contained in every other author.
func (w Weights) AuthorMatchScore(candidateAuthors []string, targetAuthor string) int {
	if targetAuthor == "" {
		return 0
	}
	ta := Normalize(targetAuthor)

	authors := make([]string, len(candidateAuthors))
	for i, a := range candidateAuthors {
		authors[i] = Normalize(a)
	}

	for _, a := range authors {
		if a == ta {
			return w.AuthorExact
		}
	}
	for _, a := range authors {
		if strings.Contains(a, ta) || strings.Contains(ta, a) {
			return w.AuthorPartial
		}
	}
	return 0
}

// YearScore favors years inside the plausible-edition window. Any other
// known year still beats an unknown one.
func (w Weights) YearScore(year types.Year) int {
	if year == 0 {
		return 0
	}
	y := int(year)
	if y >= w.YearWindowStart && y <= w.YearWindowEnd {
		return w.YearInWindow
	}
	return w.YearOutside
}

// IsLikelySummaryOrDerivative reports whether title names a summary,
// workbook, study guide or similar companion edition.
func IsLikelySummaryOrDerivative(title string) bool {
	t := Normalize(title)
	if t == "" {
		return false
	}
	for _, marker := range derivativeMarkers {
		if strings.Contains(t, marker) {
			return true
		}
	}
	return false
}
