// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/curated-reads/internal/match"
	"github.com/pdiddy/curated-reads/internal/metrics"
	"github.com/pdiddy/curated-reads/pkg/types"
)

// Searcher returns raw candidates for a free-text query. Implementations
// own caching and request deduplication.
type Searcher interface {
	SearchBooks(ctx context.Context, query string) ([]types.Book, error)
}

// Lookup fetches one book by provider identifier. found is false when the
// provider has no such record.
type Lookup interface {
	LookupBook(ctx context.Context, id string) (book types.Book, found bool, err error)
}

// Result is the outcome of curating one target.
type Result struct {
	// Book is the chosen edition; meaningful only when Found is true.
	Book  types.Book `json:"book" yaml:"book"`
	Found bool       `json:"found" yaml:"found"`

	// Pinned is set when Book came from the target's identifier override.
	Pinned bool `json:"pinned" yaml:"pinned"`

	// Ranked is every search candidate, best first. Empty for pinned results.
	Ranked []Scored `json:"ranked" yaml:"ranked"`
}

// Curator resolves a MatchTarget to a single book: a pinned identifier
// first, then search-and-rank.
type Curator struct {
	Searcher Searcher

	// Lookup resolves identifier overrides. Nil disables pinning.
	Lookup Lookup

	// Ranker defaults to DefaultRanker when its weights are unset.
	Ranker Ranker

	Logger zerolog.Logger
}

func (c *Curator) ranker() Ranker {
	if c.Ranker.Weights == (match.Weights{}) {
		return DefaultRanker
	}
	return c.Ranker
}

// Curate picks the best book for target. A pinned identifier that resolves
// to a record with a cover wins outright. Any failure on the pinned path is
// logged and the free-text search runs instead. An empty query produces an
// empty result. Only search failures are returned as errors.
func (c *Curator) Curate(ctx context.Context, target types.MatchTarget) (Result, error) {
	if target.ISBNOverride != "" && c.Lookup != nil {
		if book, ok := c.resolvePinned(ctx, target); ok {
			metrics.CurationOutcomes.WithLabelValues("pinned").Inc()
			return Result{Book: book, Found: true, Pinned: true}, nil
		}
	}

	query := target.Query()
	if query == "" {
		metrics.CurationOutcomes.WithLabelValues("empty_query").Inc()
		return Result{Ranked: []Scored{}}, nil
	}

	books, err := c.Searcher.SearchBooks(ctx, query)
	if err != nil {
		metrics.CurationOutcomes.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("searching %q: %w", query, err)
	}

	ranked := c.ranker().RankScored(books, target)
	book, ok := best(ranked)
	if ok {
		metrics.CurationOutcomes.WithLabelValues("ranked").Inc()
	} else {
		metrics.CurationOutcomes.WithLabelValues("no_match").Inc()
	}
	return Result{Book: book, Found: ok, Ranked: ranked}, nil
}

// resolvePinned performs a single lookup of the override identifier.
func (c *Curator) resolvePinned(ctx context.Context, target types.MatchTarget) (types.Book, bool) {
	log := c.Logger.With().
		Str("isbn", target.ISBNOverride).
		Str("title", target.Title).
		Logger()

	book, found, err := c.Lookup.LookupBook(ctx, target.ISBNOverride)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("pinned edition lookup failed, falling back to search")
		return types.Book{}, false
	case !found:
		log.Debug().Msg("pinned edition not found, falling back to search")
		return types.Book{}, false
	case !book.HasCover():
		log.Debug().Msg("pinned edition has no cover, falling back to search")
		return types.Book{}, false
	}
	return book, true
}
