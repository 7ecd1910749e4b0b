// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package curation

import "time"

// LCG parameters (Numerical Recipes), modulus 2^32 via uint32 wraparound.
const (
	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223
)

// SeedFor derives the shuffle seed from the UTC calendar date of t:
// year*10000 + month*100 + day.
func SeedFor(t time.Time) uint32 {
	u := t.UTC()
	return uint32(u.Year()*10000 + int(u.Month())*100 + u.Day())
}

// DailyShuffle returns a permutation of items that depends only on items
// and seed. It runs a Fisher-Yates shuffle from the last index down to 1,
// drawing from a linear congruential generator seeded with seed. items is
// not modified.
func DailyShuffle[T any](items []T, seed uint32) []T {
	out := make([]T, len(items))
	copy(out, items)

	state := seed
	next := func(n int) int {
		state = state*lcgMultiplier + lcgIncrement
		// floor(state / 2^32 * n) without floating point.
		return int(uint64(state) * uint64(n) >> 32)
	}

	for i := len(out) - 1; i >= 1; i-- {
		j := next(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
