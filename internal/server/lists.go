// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/curated-reads/internal/lists"
	"github.com/pdiddy/curated-reads/pkg/types"
)

type listsResponse struct {
	Lists []types.ReadingList `json:"lists"`
}

type addBookResponse struct {
	Added bool              `json:"added"`
	List  types.ReadingList `json:"list"`
}

func (s *Server) listError(w http.ResponseWriter, err error) {
	status := listErrorStatus(err)
	if status == http.StatusInternalServerError {
		s.deps.Logger.Error().Err(err).Msg("list store failure")
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

func (s *Server) handleListLists(w http.ResponseWriter, r *http.Request) {
	all, err := s.deps.Lists.List(r.Context())
	if err != nil {
		s.listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listsResponse{Lists: all})
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var in lists.CreateInput
	if err := decodeBody(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	l, err := s.deps.Lists.Create(r.Context(), in)
	if err != nil {
		s.listError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	l, err := s.deps.Lists.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	var upd lists.MetaUpdate
	if err := decodeBody(w, r, &upd); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	l, err := s.deps.Lists.UpdateMeta(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		s.listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Lists.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.listError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddBook(w http.ResponseWriter, r *http.Request) {
	var book types.ListBook
	if err := decodeBody(w, r, &book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	id := chi.URLParam(r, "id")
	added, err := s.deps.Lists.AddBook(r.Context(), id, book)
	if err != nil {
		s.listError(w, err)
		return
	}
	l, err := s.deps.Lists.Get(r.Context(), id)
	if err != nil {
		s.listError(w, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, addBookResponse{Added: added, List: l})
}

func (s *Server) handleRemoveBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.deps.Lists.RemoveBook(r.Context(), id, chi.URLParam(r, "bookID")); err != nil {
		s.listError(w, err)
		return
	}
	l, err := s.deps.Lists.Get(r.Context(), id)
	if err != nil {
		s.listError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
