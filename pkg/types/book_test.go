// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestParseYear(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   Year
		wantOK bool
	}{
		{"nil", nil, 0, false},
		{"int", 2019, 2019, true},
		{"int64", int64(1999), 1999, true},
		{"float truncated", 2019.7, 2019, true},
		{"Year passes through", Year(2001), 2001, true},
		{"numeric string", "2019", 2019, true},
		{"date string", "2019-05-01", 2019, true},
		{"padded string", "  1984 ", 1984, true},
		{"plus sign", "+2020", 2020, true},
		{"negative string", "-500", -500, true},
		{"trailing text", "2019 (reprint)", 2019, true},
		{"letters", "abc", 0, false},
		{"empty string", "", 0, false},
		{"bare sign", "-", 0, false},
		{"zero", 0, 0, false},
		{"zero string", "0", 0, false},
		{"bool", true, 0, false},
		{"slice", []string{"2019"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseYear(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYearUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Year
	}{
		{"number", `{"publishedYear": 2019}`, 2019},
		{"float", `{"publishedYear": 2019.7}`, 2019},
		{"string", `{"publishedYear": "2019"}`, 2019},
		{"date string", `{"publishedYear": "2019-05-01"}`, 2019},
		{"negative string", `{"publishedYear": "-500"}`, -500},
		{"letters", `{"publishedYear": "abc"}`, 0},
		{"null", `{"publishedYear": null}`, 0},
		{"bool", `{"publishedYear": true}`, 0},
		{"absent", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			require.NoError(t, json.Unmarshal([]byte(tt.doc), &b))
			assert.Equal(t, tt.want, b.PublishedYear)
		})
	}
}

func TestYearUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Year
	}{
		{"int scalar", "published_year: 2019\n", 2019},
		{"float scalar", "published_year: 2019.7\n", 2019},
		{"quoted scalar", "published_year: \"2019-05-01\"\n", 2019},
		{"negative scalar", "published_year: \"-500\"\n", -500},
		{"letters", "published_year: abc\n", 0},
		{"null", "published_year: null\n", 0},
		{"bool", "published_year: true\n", 0},
		{"sequence", "published_year: [2019, 2020]\n", 0},
		{"mapping", "published_year: {year: 2019}\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Book
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &b))
			assert.Equal(t, tt.want, b.PublishedYear)
		})
	}
}

func TestHasCover(t *testing.T) {
	assert.True(t, Book{CoverImageURL: "https://images.example/c.jpg"}.HasCover())
	assert.False(t, Book{CoverImageURL: "   "}.HasCover())
	assert.False(t, Book{}.HasCover())
}
