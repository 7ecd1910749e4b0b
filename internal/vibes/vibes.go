// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vibes infers reader-facing mood tags for a book from its length,
// subjects, title and description.
package vibes

import (
	"strings"

	"github.com/pdiddy/curated-reads/internal/isbndb"
	"github.com/pdiddy/curated-reads/pkg/types"
)

// Tag is a mood label shown on a book detail view.
type Tag string

const (
	Cozy         Tag = "cozy"
	FastPaced    Tag = "fast-paced"
	SlowBurn     Tag = "slow-burn"
	EpicFantasy  Tag = "epic-fantasy"
	CozyMystery  Tag = "cozy-mystery"
	BookClubBait Tag = "book-club-bait"
	ComfortRead  Tag = "comfort-read"
	BigFeelings  Tag = "big-feelings"
	Twisty       Tag = "twisty"
	Dark         Tag = "dark"
	Hopeful      Tag = "hopeful"
	Brainy       Tag = "brainy"
	QuietEvening Tag = "quiet-evening"
	WeekendBinge Tag = "weekend-binge"
	CuratedPick  Tag = "curated-pick"
	ChunkyRead   Tag = "chunky-read"
)

// MaxTags caps the number of tags returned for one book.
const MaxTags = 4

// Page-count thresholds.
const (
	chunkyPages = 550
	quietPages  = 320
)

// text is the lowercased metadata a rule inspects.
type text struct {
	title       string
	description string
	subjects    string
}

type rule struct {
	tags  []Tag
	match func(t text) bool
}

func anyOf(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// rules are evaluated in order; tag order in the result follows it.
var rules = []rule{
	{
		tags:  []Tag{EpicFantasy},
		match: func(t text) bool { return strings.Contains(t.subjects, "fantasy") || strings.Contains(t.title, "mistborn") },
	},
	{
		tags: []Tag{CozyMystery},
		match: func(t text) bool {
			return strings.Contains(t.subjects, "mystery") ||
				strings.Contains(t.title, "murder club") ||
				strings.Contains(t.description, "whodunit")
		},
	},
	{
		tags:  []Tag{ComfortRead},
		match: func(t text) bool { return strings.Contains(t.subjects, "romance") || strings.Contains(t.description, "rom-com") },
	},
	{
		tags:  []Tag{Hopeful, ComfortRead},
		match: func(t text) bool { return anyOf(t.description, "heartwarming", "uplifting", "feel-good") },
	},
	{
		tags:  []Tag{Dark},
		match: func(t text) bool { return anyOf(t.description, "dark", "macabre", "gritty") },
	},
	{
		tags:  []Tag{Twisty},
		match: func(t text) bool { return anyOf(t.description, "twist", "shock ending") },
	},
	{
		tags: []Tag{BookClubBait, BigFeelings},
		match: func(t text) bool {
			return strings.Contains(t.subjects, "literary") ||
				anyOf(t.description, "book club", "multi-generational", "family saga")
		},
	},
	{
		tags:  []Tag{Brainy},
		match: func(t text) bool { return anyOf(t.subjects, "science", "philosophy", "history") },
	},
}

// Tagger assigns mood tags. Overrides pins tags for specific books by
// ISBN-13 or provider id; pinned tags come first.
type Tagger struct {
	Overrides map[string][]Tag
}

// NewTagger returns a Tagger whose override keys are stored in canonical
// form, so ISBN-10 and hyphenated keys match the same edition.
func NewTagger(overrides map[string][]Tag) Tagger {
	if len(overrides) == 0 {
		return Tagger{}
	}
	canon := make(map[string][]Tag, len(overrides))
	for k, tags := range overrides {
		key := canonicalID(k)
		canon[key] = append(canon[key], tags...)
	}
	return Tagger{Overrides: canon}
}

// MoodTags returns up to MaxTags distinct tags for b, or CuratedPick when
// nothing applies.
func (tg Tagger) MoodTags(b types.Book) []Tag {
	var tags []Tag
	seen := make(map[Tag]bool)
	add := func(ts ...Tag) {
		for _, t := range ts {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}

	add(tg.override(b)...)

	switch {
	case b.PageCount > chunkyPages:
		add(ChunkyRead, WeekendBinge)
	case b.PageCount > 0 && b.PageCount < quietPages:
		add(QuietEvening)
	}

	subjects := make([]string, len(b.Subjects))
	for i, s := range b.Subjects {
		subjects[i] = strings.ToLower(s)
	}
	t := text{
		title:       strings.ToLower(b.Title),
		description: strings.ToLower(b.Description),
		subjects:    strings.Join(subjects, " | "),
	}
	for _, r := range rules {
		if r.match(t) {
			add(r.tags...)
		}
	}

	if len(tags) == 0 {
		return []Tag{CuratedPick}
	}
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	return tags
}

func (tg Tagger) override(b types.Book) []Tag {
	if tg.Overrides == nil {
		return nil
	}
	for _, id := range []string{b.ISBN13, b.ID} {
		if id == "" {
			continue
		}
		if tags, ok := tg.Overrides[id]; ok {
			return tags
		}
		if tags, ok := tg.Overrides[canonicalID(id)]; ok {
			return tags
		}
	}
	return nil
}

// canonicalID maps any ISBN form to its ISBN-13 and leaves other
// identifiers trimmed.
func canonicalID(id string) string {
	if isbn, ok := isbndb.ToISBN13(id); ok {
		return isbn
	}
	return strings.TrimSpace(id)
}

// MoodTags tags b without overrides.
func MoodTags(b types.Book) []Tag {
	return Tagger{}.MoodTags(b)
}
