package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meur/shopkeep/internal/models"
	"github.com/meur/shopkeep/internal/pricing"
	"github.com/meur/shopkeep/internal/stock"
)

// handleGetPresets returns all presets
func (s *Server) handleGetPresets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.presets.List())
}

// handleGetPreset returns a single preset by ID
func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, ok := s.presets.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Preset not found")
		return
	}
	respondJSON(w, http.StatusOK, preset)
}

// handleCreatePreset creates a new preset
func (s *Server) handleCreatePreset(w http.ResponseWriter, r *http.Request) {
	var req models.ShopPreset
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	preset, err := s.presets.Add(r.Context(), req)
	if err != nil {
		respondWriteError(w, err, "preset")
		return
	}

	logGMAction(r, "created preset "+preset.ID)
	respondJSON(w, http.StatusCreated, preset)
}

// handleUpdatePreset replaces an existing preset
func (s *Server) handleUpdatePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.ShopPreset
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	preset, err := s.presets.Update(r.Context(), id, req)
	if err != nil {
		respondWriteError(w, err, "preset")
		return
	}

	logGMAction(r, "updated preset "+id)
	respondJSON(w, http.StatusOK, preset)
}

// handleDeletePreset deletes a preset by ID
func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.presets.Delete(r.Context(), id); err != nil {
		respondWriteError(w, err, "preset")
		return
	}
	logGMAction(r, "deleted preset "+id)

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleCheckPreset lists preset lines that would never stock
func (s *Server) handleCheckPreset(w http.ResponseWriter, r *http.Request) {
	preset, ok := s.presets.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Preset not found")
		return
	}

	dangling := s.catalog.Dangling(preset)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"preset_id": preset.ID,
		"ok":        len(dangling) == 0,
		"dangling":  dangling,
	})
}

// handleGenerateStock previews a stock roll without saving it
func (s *Server) handleGenerateStock(w http.ResponseWriter, r *http.Request) {
	preset, ok := s.presets.Get(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusNotFound, "Preset not found")
		return
	}

	var req models.RestockRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, err := s.generate(preset, req.Seed)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to roll stock")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":       items,
		"total_count": len(items),
		"quotes":      pricing.QuoteAll(items, preset),
	})
}

func (s *Server) generate(preset models.ShopPreset, seed *int64) ([]models.Item, error) {
	src, err := s.newSource(seed)
	if err != nil {
		return nil, err
	}
	return stock.GenerateFromPreset(preset, s.catalog.Items(), src), nil
}

// decodeOptionalJSON decodes the body into v, accepting an empty body
func decodeOptionalJSON(r *http.Request, v interface{}) error {
	if err := decodeJSON(r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
