package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meur/shopkeep/internal/catalog"
	"github.com/meur/shopkeep/internal/models"
)

// handleGetCatalog returns built-in and custom items
func (s *Server) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	items := s.catalog.Items()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_count": len(items),
	})
}

// handleGetCustomItems returns campaign-custom items
func (s *Server) handleGetCustomItems(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Custom())
}

// handleSuggest returns catalog names close to q
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	n := 5
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = min(parsed, 25)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":       query,
		"suggestions": s.catalog.Suggest(query, n),
	})
}

// handleCreateCustomItem adds a campaign-custom item
func (s *Server) handleCreateCustomItem(w http.ResponseWriter, r *http.Request) {
	var item models.RepoItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.catalog.AddCustom(r.Context(), item)
	if err != nil {
		if errors.Is(err, catalog.ErrNameRequired) {
			respondError(w, http.StatusBadRequest, "name is required")
			return
		}
		respondWriteError(w, err, "item")
		return
	}

	logGMAction(r, "added custom item "+created.Name)
	respondJSON(w, http.StatusCreated, created)
}

// handleUpdateCustomItem replaces a campaign-custom item
func (s *Server) handleUpdateCustomItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var item models.RepoItem
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.catalog.UpdateCustom(r.Context(), name, item)
	if err != nil {
		respondWriteError(w, err, "item")
		return
	}

	logGMAction(r, "updated custom item "+name)
	respondJSON(w, http.StatusOK, updated)
}

// handleDeleteCustomItem removes a campaign-custom item
func (s *Server) handleDeleteCustomItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := s.catalog.DeleteCustom(r.Context(), name); err != nil {
		respondWriteError(w, err, "item")
		return
	}
	logGMAction(r, "deleted custom item "+name)

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
