// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curated-reads/pkg/types"
)

func TestCacheGetSetExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New[int](time.Minute, clock)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	clock.Advance(59 * time.Second)
	_, ok = c.Get("a")
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestCachePrune(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New[string](time.Minute, clock)
	c.Set("old", "x")
	clock.Advance(30 * time.Second)
	c.Set("new", "y")
	clock.Advance(45 * time.Second)

	assert.Equal(t, 1, c.Prune())
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("new")
	assert.True(t, ok)
}

func TestCacheSetSweepsExpiredEntries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New[int](10*time.Minute, clock)

	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("q%d", i), i)
		clock.Advance(time.Hour)
	}
	assert.Equal(t, 1, c.Len())
}

func TestCacheSetSweepsAtMostOncePerTTL(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := New[int](time.Minute, clock)

	c.Set("a", 1)
	clock.Advance(30 * time.Second)
	c.Set("b", 2)
	clock.Advance(40 * time.Second)
	c.Set("c", 3)
	assert.Equal(t, 2, c.Len(), "a swept, b and c live")

	// b expired at 90s; the next sweep is not due until 130s.
	clock.Advance(30 * time.Second)
	c.Set("d", 4)
	assert.Equal(t, 3, c.Len())

	clock.Advance(30 * time.Second)
	c.Set("e", 5)
	assert.Equal(t, 2, c.Len(), "b and c swept, d and e live")
}

func TestCacheZeroTTLStoresNothing(t *testing.T) {
	c := New[int](0, nil)
	c.Set("a", 1)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestGetOrComputeCachesValue(t *testing.T) {
	c := New[int](time.Minute, clockwork.NewFakeClock())
	var calls int32
	compute := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}

	v, hit, err := c.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, v)

	v, hit, err = c.GetOrCompute(context.Background(), "k", compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	c := New[int](time.Minute, clockwork.NewFakeClock())
	boom := errors.New("boom")
	var calls int32

	for i := 0; i < 2; i++ {
		_, _, err := c.GetOrCompute(context.Background(), "k", func(context.Context) (int, error) {
			atomic.AddInt32(&calls, 1)
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, 0, c.Len())
}

func TestGetOrComputeDeduplicatesConcurrentCalls(t *testing.T) {
	c := New[string](time.Minute, clockwork.NewFakeClock())
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})

	compute := func(context.Context) (string, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return "value", nil
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _, err := c.GetOrCompute(context.Background(), "k", compute)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	<-started
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "value", r)
	}
}

// --- CachedSearcher / CachedLookup ---

type countingSearcher struct {
	calls atomic.Int32
	err   error
}

func (s *countingSearcher) SearchBooks(_ context.Context, query string) ([]types.Book, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []types.Book{{ID: query, Title: query}}, nil
}

func TestCachedSearcherNormalizesQueries(t *testing.T) {
	inner := &countingSearcher{}
	s := NewSearcher(inner, time.Minute, clockwork.NewFakeClock())

	first, err := s.SearchBooks(context.Background(), "Circe  Madeline Miller")
	require.NoError(t, err)
	second, err := s.SearchBooks(context.Background(), " circe madeline miller ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedSearcherReturnsCopies(t *testing.T) {
	s := NewSearcher(&countingSearcher{}, time.Minute, clockwork.NewFakeClock())

	first, err := s.SearchBooks(context.Background(), "Circe")
	require.NoError(t, err)
	first[0] = types.Book{ID: "mutated"}

	second, err := s.SearchBooks(context.Background(), "Circe")
	require.NoError(t, err)
	assert.Equal(t, "Circe", second[0].ID)
}

func TestCachedSearcherExpires(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingSearcher{}
	s := NewSearcher(inner, time.Minute, clock)

	_, _ = s.SearchBooks(context.Background(), "Circe")
	clock.Advance(2 * time.Minute)
	_, _ = s.SearchBooks(context.Background(), "Circe")
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedSearcherPassesErrorsThrough(t *testing.T) {
	boom := errors.New("provider down")
	s := NewSearcher(&countingSearcher{err: boom}, time.Minute, clockwork.NewFakeClock())

	_, err := s.SearchBooks(context.Background(), "Circe")
	assert.ErrorIs(t, err, boom)
}

type stubLookup struct {
	calls atomic.Int32
	books map[string]types.Book
}

func (l *stubLookup) LookupBook(_ context.Context, id string) (types.Book, bool, error) {
	l.calls.Add(1)
	b, ok := l.books[id]
	return b, ok, nil
}

func TestCachedLookupCachesNegativeResults(t *testing.T) {
	inner := &stubLookup{books: map[string]types.Book{"9780316556347": {ID: "9780316556347"}}}
	l := NewLookup(inner, time.Minute, clockwork.NewFakeClock())

	for i := 0; i < 3; i++ {
		_, found, err := l.LookupBook(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, found)
	}
	b, found, err := l.LookupBook(context.Background(), "9780316556347")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "9780316556347", b.ID)

	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedSearcherDoesNotRetainExpiredQueries(t *testing.T) {
	clock := clockwork.NewFakeClock()
	s := NewSearcher(&countingSearcher{}, 10*time.Minute, clock)

	for i := 0; i < 1000; i++ {
		_, err := s.SearchBooks(context.Background(), fmt.Sprintf("query %d", i))
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}
	assert.Equal(t, 1, s.cache.Len())
}

func TestCachedLookupSharesEntryAcrossISBNForms(t *testing.T) {
	inner := &stubLookup{books: map[string]types.Book{
		"0-306-40615-2":     {ID: "9780306406157"},
		"9780306406157":     {ID: "9780306406157"},
		"978-0-306-40615-7": {ID: "9780306406157"},
	}}
	l := NewLookup(inner, time.Minute, clockwork.NewFakeClock())

	for _, id := range []string{"0-306-40615-2", "9780306406157", " 978-0-306-40615-7 ", "0306406152"} {
		b, found, err := l.LookupBook(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, found, id)
		assert.Equal(t, "9780306406157", b.ID)
	}
	assert.Equal(t, int32(1), inner.calls.Load())
}
