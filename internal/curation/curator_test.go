// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curated-reads/pkg/types"
)

type fakeSearcher struct {
	results map[string][]types.Book
	errs    map[string]error
	calls   atomic.Int32
}

func (f *fakeSearcher) SearchBooks(_ context.Context, query string) ([]types.Book, error) {
	f.calls.Add(1)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

type fakeLookup struct {
	books map[string]types.Book
	err   error
	calls atomic.Int32
}

func (f *fakeLookup) LookupBook(_ context.Context, id string) (types.Book, bool, error) {
	f.calls.Add(1)
	if f.err != nil {
		return types.Book{}, false, f.err
	}
	b, ok := f.books[id]
	return b, ok, nil
}

var circeResults = []types.Book{
	{ID: "summary", Title: "Circe: Summary and Analysis", Authors: []string{"Quick Reads"}, CoverImageURL: "c1"},
	{ID: "circe", Title: "Circe", Authors: []string{"Madeline Miller"}, CoverImageURL: "c2", PublishedYear: 2018},
	{ID: "nocover", Title: "Circe", Authors: []string{"Madeline Miller"}},
}

func newTestCurator(s Searcher, l Lookup, log *bytes.Buffer) *Curator {
	logger := zerolog.Nop()
	if log != nil {
		logger = zerolog.New(log).Level(zerolog.DebugLevel)
	}
	return &Curator{Searcher: s, Lookup: l, Logger: logger}
}

func TestCurateRanksSearchResults(t *testing.T) {
	s := &fakeSearcher{results: map[string][]types.Book{"Circe Madeline Miller": circeResults}}
	c := newTestCurator(s, nil, nil)

	res, err := c.Curate(context.Background(), types.MatchTarget{Title: "Circe", Author: "Madeline Miller"})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.False(t, res.Pinned)
	assert.Equal(t, "circe", res.Book.ID)
	require.Len(t, res.Ranked, 3)
	assert.Equal(t, "circe", res.Ranked[0].Book.ID)
}

func TestCuratePinnedEditionSkipsSearch(t *testing.T) {
	pinned := types.Book{ID: "9780316556347", Title: "Circe (Hardcover)", CoverImageURL: "cover"}
	s := &fakeSearcher{}
	l := &fakeLookup{books: map[string]types.Book{"9780316556347": pinned}}
	c := newTestCurator(s, l, nil)

	res, err := c.Curate(context.Background(), types.MatchTarget{
		Title:        "Circe",
		Author:       "Madeline Miller",
		ISBNOverride: "9780316556347",
	})
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.True(t, res.Pinned)
	assert.Equal(t, pinned, res.Book)
	assert.Empty(t, res.Ranked)
	assert.Equal(t, int32(0), s.calls.Load())
	assert.Equal(t, int32(1), l.calls.Load())
}

func TestCuratePinnedFallsThrough(t *testing.T) {
	target := types.MatchTarget{Title: "Circe", Author: "Madeline Miller", ISBNOverride: "9780316556347"}

	tests := []struct {
		name    string
		lookup  *fakeLookup
		wantLog string
	}{
		{
			name:    "lookup error",
			lookup:  &fakeLookup{err: errors.New("connection reset")},
			wantLog: "pinned edition lookup failed",
		},
		{
			name:    "not found",
			lookup:  &fakeLookup{books: map[string]types.Book{}},
			wantLog: "pinned edition not found",
		},
		{
			name: "no cover",
			lookup: &fakeLookup{books: map[string]types.Book{
				"9780316556347": {ID: "9780316556347", Title: "Circe"},
			}},
			wantLog: "pinned edition has no cover",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			s := &fakeSearcher{results: map[string][]types.Book{"Circe Madeline Miller": circeResults}}
			c := newTestCurator(s, tt.lookup, &log)

			res, err := c.Curate(context.Background(), target)
			require.NoError(t, err)
			assert.True(t, res.Found)
			assert.False(t, res.Pinned)
			assert.Equal(t, "circe", res.Book.ID)
			assert.Equal(t, int32(1), s.calls.Load())
			assert.Contains(t, log.String(), tt.wantLog)
			assert.Contains(t, log.String(), "9780316556347")
		})
	}
}

func TestCurateNilLookupIgnoresOverride(t *testing.T) {
	s := &fakeSearcher{results: map[string][]types.Book{"Circe": circeResults}}
	c := newTestCurator(s, nil, nil)

	res, err := c.Curate(context.Background(), types.MatchTarget{Title: "Circe", ISBNOverride: "123"})
	require.NoError(t, err)
	assert.False(t, res.Pinned)
	assert.Equal(t, int32(1), s.calls.Load())
}

func TestCurateEmptyQuery(t *testing.T) {
	s := &fakeSearcher{}
	c := newTestCurator(s, nil, nil)

	res, err := c.Curate(context.Background(), types.MatchTarget{Title: "  ", Author: ""})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Empty(t, res.Ranked)
	assert.Equal(t, int32(0), s.calls.Load())
}

func TestCurateSearchErrorIsReturned(t *testing.T) {
	boom := errors.New("provider down")
	s := &fakeSearcher{errs: map[string]error{"Circe": boom}}
	c := newTestCurator(s, nil, nil)

	_, err := c.Curate(context.Background(), types.MatchTarget{Title: "Circe"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"Circe"`)
}

func TestCurateRequireCoverNoAcceptableBook(t *testing.T) {
	s := &fakeSearcher{results: map[string][]types.Book{"Circe": {circeResults[2]}}}
	c := newTestCurator(s, nil, nil)

	res, err := c.Curate(context.Background(), types.MatchTarget{Title: "Circe", RequireCover: true})
	require.NoError(t, err)
	assert.False(t, res.Found)
	require.Len(t, res.Ranked, 1)
	assert.True(t, res.Ranked[0].Disqualified)
}

func TestCurateCustomRanker(t *testing.T) {
	w := DefaultRanker.Weights
	w.DerivativePenalty = 0
	w.AuthorExact = 0
	w.TitlePrefix = 100

	s := &fakeSearcher{results: map[string][]types.Book{"Circe Madeline Miller": circeResults}}
	c := newTestCurator(s, nil, nil)
	c.Ranker = Ranker{Weights: w}

	res, err := c.Curate(context.Background(), types.MatchTarget{Title: "Circe", Author: "Madeline Miller"})
	require.NoError(t, err)
	assert.Equal(t, "summary", res.Book.ID)
}
