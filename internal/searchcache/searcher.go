// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchcache

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pdiddy/curated-reads/internal/isbndb"
	"github.com/pdiddy/curated-reads/internal/metrics"
	"github.com/pdiddy/curated-reads/pkg/types"
)

// Searcher is the free-text search operation being cached.
type Searcher interface {
	SearchBooks(ctx context.Context, query string) ([]types.Book, error)
}

// Lookup is the point lookup operation being cached.
type Lookup interface {
	LookupBook(ctx context.Context, id string) (types.Book, bool, error)
}

// CachedSearcher caches search results by normalized query.
type CachedSearcher struct {
	inner Searcher
	cache *Cache[[]types.Book]
}

// NewSearcher wraps inner with a cache of the given TTL.
func NewSearcher(inner Searcher, ttl time.Duration, clock clockwork.Clock) *CachedSearcher {
	return &CachedSearcher{inner: inner, cache: New[[]types.Book](ttl, clock)}
}

// SearchBooks returns cached results for query when present. The returned
// slice is a copy; the Books in it share their slices with the cache and
// must be treated as read-only.
func (s *CachedSearcher) SearchBooks(ctx context.Context, query string) ([]types.Book, error) {
	books, hit, err := s.cache.GetOrCompute(ctx, queryKey(query), func(ctx context.Context) ([]types.Book, error) {
		return s.inner.SearchBooks(ctx, query)
	})
	record(hit)
	if err != nil {
		return nil, err
	}
	return slices.Clone(books), nil
}

type lookupResult struct {
	book  types.Book
	found bool
}

// CachedLookup caches point lookups by identifier, negative results included.
type CachedLookup struct {
	inner Lookup
	cache *Cache[lookupResult]
}

// NewLookup wraps inner with a cache of the given TTL.
func NewLookup(inner Lookup, ttl time.Duration, clock clockwork.Clock) *CachedLookup {
	return &CachedLookup{inner: inner, cache: New[lookupResult](ttl, clock)}
}

// LookupBook returns the cached lookup for id when present. ISBN-10 and
// hyphenated forms of one edition share an entry.
func (l *CachedLookup) LookupBook(ctx context.Context, id string) (types.Book, bool, error) {
	res, hit, err := l.cache.GetOrCompute(ctx, lookupKey(id), func(ctx context.Context) (lookupResult, error) {
		b, found, err := l.inner.LookupBook(ctx, id)
		return lookupResult{book: b, found: found}, err
	})
	record(hit)
	if err != nil {
		return types.Book{}, false, err
	}
	return res.book, res.found, nil
}

// queryKey folds case and whitespace so trivially different queries share
// an entry.
func queryKey(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

func lookupKey(id string) string {
	if isbn, ok := isbndb.ToISBN13(id); ok {
		return isbn
	}
	return strings.TrimSpace(id)
}

func record(hit bool) {
	if hit {
		metrics.SearchCacheLookups.WithLabelValues("hit").Inc()
	} else {
		metrics.SearchCacheLookups.WithLabelValues("miss").Inc()
	}
}
