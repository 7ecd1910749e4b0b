// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

// Weights is the scoring table shared by the matcher and the curation
// ranker. Scores are signed integers and are never clamped: a stacked
// penalty is meant to dominate everything else.
type Weights struct {
	// Title tiers, checked in order; the first that applies wins.
	TitleExact      int
	TitlePrefix     int
	TitleSubstring  int
	TitleTokensHigh int // token overlap ratio >= TokenRatioHigh
	TitleTokensLow  int // token overlap ratio >= TokenRatioLow
	TokenRatioHigh  float64
	TokenRatioLow   float64

	// Author tiers.
	AuthorExact   int
	AuthorPartial int

	// Year plausibility window, inclusive on both ends.
	YearWindowStart int
	YearWindowEnd   int
	YearInWindow    int
	YearOutside     int

	// Cover presence.
	CoverBonus   int
	CoverPenalty int // subtracted when the cover is missing

	// DerivativePenalty is subtracted from summaries, workbooks and the like.
	DerivativePenalty int

	// DisqualifyPenalty is subtracted when a cover is required but missing.
	DisqualifyPenalty int
}

// DefaultWeights is the production scoring table.
var DefaultWeights = Weights{
	TitleExact:      40,
	TitlePrefix:     28,
	TitleSubstring:  18,
	TitleTokensHigh: 14,
	TitleTokensLow:  8,
	TokenRatioHigh:  0.8,
	TokenRatioLow:   0.6,

	AuthorExact:   25,
	AuthorPartial: 14,

	YearWindowStart: 1990,
	YearWindowEnd:   2023,
	YearInWindow:    4,
	YearOutside:     1,

	CoverBonus:   12,
	CoverPenalty: 8,

	DerivativePenalty: 40,
	DisqualifyPenalty: 1000,
}

// WithYearWindowEnd returns a copy of w whose plausible-year window ends at
// year. A non-positive year leaves the window unchanged.
func (w Weights) WithYearWindowEnd(year int) Weights {
	if year > 0 {
		w.YearWindowEnd = year
	}
	return w
}
