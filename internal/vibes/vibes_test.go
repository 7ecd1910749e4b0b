// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vibes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/curated-reads/pkg/types"
)

func TestMoodTags(t *testing.T) {
	tests := []struct {
		name string
		book types.Book
		want []Tag
	}{
		{
			name: "nothing applies",
			book: types.Book{Title: "Plain"},
			want: []Tag{CuratedPick},
		},
		{
			name: "chunky fantasy",
			book: types.Book{Title: "Mistborn: The Final Empire", PageCount: 672},
			want: []Tag{ChunkyRead, WeekendBinge, EpicFantasy},
		},
		{
			name: "short and quiet",
			book: types.Book{Title: "Small Things Like These", PageCount: 128},
			want: []Tag{QuietEvening},
		},
		{
			name: "mid length adds nothing",
			book: types.Book{Title: "Middle", PageCount: 400},
			want: []Tag{CuratedPick},
		},
		{
			name: "cozy mystery from title",
			book: types.Book{Title: "The Thursday Murder Club", Description: "A whodunit with a heartwarming cast."},
			want: []Tag{CozyMystery, Hopeful, ComfortRead},
		},
		{
			name: "subjects are case-insensitive",
			book: types.Book{Title: "x", Subjects: []string{"ROMANCE", "History"}},
			want: []Tag{ComfortRead, Brainy},
		},
		{
			name: "capped at four",
			book: types.Book{
				Title:       "Everything",
				PageCount:   700,
				Subjects:    []string{"Fantasy", "Literary Fiction"},
				Description: "A dark family saga with a twist.",
			},
			want: []Tag{ChunkyRead, WeekendBinge, EpicFantasy, Dark},
		},
		{
			name: "book club",
			book: types.Book{Title: "x", Description: "Perfect for your book club."},
			want: []Tag{BookClubBait, BigFeelings},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoodTags(tt.book))
		})
	}
}

func TestTaggerOverridesComeFirst(t *testing.T) {
	tg := Tagger{Overrides: map[string][]Tag{
		"9781984880994": {CozyMystery, QuietEvening},
		"by-id":         {SlowBurn},
	}}

	got := tg.MoodTags(types.Book{ID: "x", ISBN13: "9781984880994", PageCount: 200, Subjects: []string{"Mystery"}})
	assert.Equal(t, []Tag{CozyMystery, QuietEvening}, got)

	got = tg.MoodTags(types.Book{ID: "by-id", Title: "Plain"})
	assert.Equal(t, []Tag{SlowBurn}, got)
}

func TestTaggerOverridesMatchAnyISBNForm(t *testing.T) {
	tg := NewTagger(map[string][]Tag{
		"0-306-40615-2": {Dark},
		"by-id":         {SlowBurn},
	})

	got := tg.MoodTags(types.Book{ID: "9780306406157", Title: "Plain"})
	assert.Equal(t, []Tag{Dark}, got)

	got = tg.MoodTags(types.Book{ID: "x", ISBN13: "978-0-306-40615-7", Title: "Plain"})
	assert.Equal(t, []Tag{Dark}, got)

	got = tg.MoodTags(types.Book{ID: "by-id", Title: "Plain"})
	assert.Equal(t, []Tag{SlowBurn}, got)
}

func TestTaggerOverrideLooksPastUnpinnedISBN(t *testing.T) {
	tg := NewTagger(map[string][]Tag{"by-id": {SlowBurn}})

	got := tg.MoodTags(types.Book{ID: "by-id", ISBN13: "9780306406157", Title: "Plain"})
	assert.Equal(t, []Tag{SlowBurn}, got)
}
