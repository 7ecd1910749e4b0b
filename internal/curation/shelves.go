// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/curated-reads/pkg/types"
)

// ShelfOptions controls shelf building.
type ShelfOptions struct {
	// RequireCover is applied to every item on every shelf.
	RequireCover bool

	// Concurrency bounds in-flight curation requests. Values below 1 mean 1.
	Concurrency int
}

type slot struct {
	section int
	item    int
}

// BuildShelves resolves every item of every section to a book. Items are
// curated concurrently, but each shelf keeps its editorial order. Books
// already placed on the same shelf are skipped, and a shelf stops growing at
// its Limit when one is set. Items that produce no acceptable book, or
// whose search fails, are recorded in Missing. Only context cancellation
// aborts the build.
func (c *Curator) BuildShelves(ctx context.Context, sections []types.ShelfSection, opts ShelfOptions) ([]types.CuratedShelf, error) {
	results := make([][]Result, len(sections))
	var slots []slot
	for si, sec := range sections {
		results[si] = make([]Result, len(sec.Items))
		for ii := range sec.Items {
			slots = append(slots, slot{section: si, item: ii})
		}
	}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, s := range slots {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item := sections[s.section].Items[s.item]
			res, err := c.Curate(gctx, item.Target(opts.RequireCover))
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.Logger.Warn().Err(err).
					Str("shelf", sections[s.section].Key).
					Str("title", item.Title).
					Msg("shelf item search failed")
				return nil
			}
			results[s.section][s.item] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	shelves := make([]types.CuratedShelf, len(sections))
	for si, sec := range sections {
		shelves[si] = assembleShelf(sec, results[si])
	}
	return shelves, nil
}

func assembleShelf(sec types.ShelfSection, results []Result) types.CuratedShelf {
	shelf := types.CuratedShelf{
		Key:      sec.Key,
		Title:    sec.Title,
		Subtitle: sec.Subtitle,
		Books:    []types.Book{},
	}
	seen := make(map[string]bool)
	for i, item := range sec.Items {
		res := results[i]
		if !res.Found {
			shelf.Missing = append(shelf.Missing, item.Title)
			continue
		}
		if seen[res.Book.ID] {
			continue
		}
		if sec.Limit > 0 && len(shelf.Books) >= sec.Limit {
			break
		}
		seen[res.Book.ID] = true
		shelf.Books = append(shelf.Books, res.Book)
	}
	return shelf
}

// Featured pools the cover-bearing books of all shelves, drops repeats
// (first occurrence wins), rotates the pool with the daily shuffle for now,
// and returns the first n. n <= 0 returns the whole rotated pool.
func Featured(shelves []types.CuratedShelf, n int, now time.Time) []types.Book {
	var pool []types.Book
	seen := make(map[string]bool)
	for _, shelf := range shelves {
		for _, b := range shelf.Books {
			if !b.HasCover() || seen[b.ID] {
				continue
			}
			seen[b.ID] = true
			pool = append(pool, b)
		}
	}

	rotated := DailyShuffle(pool, SeedFor(now))
	if n > 0 && len(rotated) > n {
		rotated = rotated[:n]
	}
	return rotated
}
