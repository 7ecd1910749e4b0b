// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package curation picks the best edition of a book for a curated slot.
// It ranks provider search results against a target title and author,
// honors hard-pinned identifiers, builds editorial shelves, and rotates a
// featured selection once per UTC day.
package curation

import (
	"sort"

	"github.com/pdiddy/curated-reads/internal/match"
	"github.com/pdiddy/curated-reads/pkg/types"
)

// Scored pairs a candidate with its composite score.
type Scored struct {
	Book  types.Book `json:"book" yaml:"book"`
	Score int        `json:"score" yaml:"score"`

	// Disqualified is set when the target requires a cover and the
	// candidate has none. The candidate stays in the ranking.
	Disqualified bool `json:"disqualified,omitempty" yaml:"disqualified,omitempty"`
}

// Ranker scores candidates with a weight table.
type Ranker struct {
	Weights match.Weights
}

// DefaultRanker uses match.DefaultWeights.
var DefaultRanker = Ranker{Weights: match.DefaultWeights}

// Score computes the composite score of b against target.
func (r Ranker) Score(b types.Book, target types.MatchTarget) Scored {
	w := r.Weights
	score := 0

	hasCover := b.HasCover()
	if hasCover {
		score += w.CoverBonus
	} else {
		score -= w.CoverPenalty
	}

	score += w.TitleMatchScore(b.Title, target.Title)
	score += w.AuthorMatchScore(b.Authors, target.Author)
	score += w.YearScore(b.PublishedYear)

	if match.IsLikelySummaryOrDerivative(b.Title) {
		score -= w.DerivativePenalty
	}

	disqualified := target.RequireCover && !hasCover
	if disqualified {
		score -= w.DisqualifyPenalty
	}

	return Scored{Book: b, Score: score, Disqualified: disqualified}
}

// RankScored scores every candidate and returns them best first. Equal
// scores keep their input order. The input slice is not modified.
func (r Ranker) RankScored(books []types.Book, target types.MatchTarget) []Scored {
	scored := make([]Scored, len(books))
	for i, b := range books {
		scored[i] = r.Score(b, target)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// Rank returns the candidates reordered best first.
func (r Ranker) Rank(books []types.Book, target types.MatchTarget) []types.Book {
	scored := r.RankScored(books, target)
	ranked := make([]types.Book, len(scored))
	for i, s := range scored {
		ranked[i] = s.Book
	}
	return ranked
}

// PickBest returns the top-ranked candidate. It reports false when there
// are no candidates or when even the best one is disqualified by a cover
// requirement: a disqualified book is never an acceptable pick.
func (r Ranker) PickBest(books []types.Book, target types.MatchTarget) (types.Book, bool) {
	return best(r.RankScored(books, target))
}

func best(ranked []Scored) (types.Book, bool) {
	if len(ranked) == 0 || ranked[0].Disqualified {
		return types.Book{}, false
	}
	return ranked[0].Book, true
}

// Rank orders books with the default weights.
func Rank(books []types.Book, target types.MatchTarget) []types.Book {
	return DefaultRanker.Rank(books, target)
}

// RankScored orders books with the default weights and keeps their scores.
func RankScored(books []types.Book, target types.MatchTarget) []Scored {
	return DefaultRanker.RankScored(books, target)
}

// PickBest returns the best book under the default weights.
func PickBest(books []types.Book, target types.MatchTarget) (types.Book, bool) {
	return DefaultRanker.PickBest(books, target)
}
