// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/curated-reads/internal/curation"
	"github.com/pdiddy/curated-reads/internal/vibes"
	"github.com/pdiddy/curated-reads/pkg/types"
)

type searchResponse struct {
	Books []types.Book `json:"books"`
}

type curatedResponse struct {
	Book   *types.Book  `json:"book"`
	Books  []types.Book `json:"books"`
	Pinned bool         `json:"pinned"`
}

type bookResponse struct {
	Book  types.Book  `json:"book"`
	Moods []vibes.Tag `json:"moods"`
}

type shelvesResponse struct {
	Shelves []types.CuratedShelf `json:"shelves"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, `missing query parameter "q"`)
		return
	}

	books, err := s.deps.Searcher.SearchBooks(r.Context(), q)
	if err != nil {
		s.deps.Logger.Error().Err(err).Str("q", q).Msg("search failed")
		writeError(w, http.StatusBadGateway, "failed to search books")
		return
	}
	if books == nil {
		books = []types.Book{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Books: books})
}

func (s *Server) handleSearchCurated(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	target := types.MatchTarget{
		Title:        params.Get("title"),
		Author:       params.Get("author"),
		RequireCover: truthy(params.Get("requireCover")),
		ISBNOverride: strings.TrimSpace(params.Get("isbn")),
	}
	if target.Query() == "" {
		writeJSON(w, http.StatusOK, curatedResponse{Books: []types.Book{}})
		return
	}

	res, err := s.deps.Curator.Curate(r.Context(), target)
	if err != nil {
		s.deps.Logger.Error().Err(err).Str("title", target.Title).Msg("curated search failed")
		writeError(w, http.StatusBadGateway, "failed to search books")
		return
	}

	out := curatedResponse{Books: make([]types.Book, len(res.Ranked)), Pinned: res.Pinned}
	for i, sc := range res.Ranked {
		out.Books[i] = sc.Book
	}
	if res.Found {
		book := res.Book
		out.Book = &book
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	book, found, err := s.deps.Lookup.LookupBook(r.Context(), id)
	if err != nil {
		s.deps.Logger.Error().Err(err).Str("id", id).Msg("book lookup failed")
		writeError(w, http.StatusBadGateway, "failed to load book")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "book not found")
		return
	}
	writeJSON(w, http.StatusOK, bookResponse{Book: book, Moods: s.deps.Tagger.MoodTags(book)})
}

func (s *Server) handleShelves(w http.ResponseWriter, _ *http.Request) {
	shelves := s.deps.Shelves
	if shelves == nil {
		shelves = []types.CuratedShelf{}
	}
	writeJSON(w, http.StatusOK, shelvesResponse{Shelves: shelves})
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	n := s.deps.FeaturedCount
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, `query parameter "n" must be a positive integer`)
			return
		}
		n = parsed
	}

	books := curation.Featured(s.deps.Shelves, n, s.deps.Clock.Now())
	if books == nil {
		books = []types.Book{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Books: books})
}

// truthy accepts the flag spellings browsers and scripts send.
func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
