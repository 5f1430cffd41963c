package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meur/shopkeep/internal/models"
	"github.com/meur/shopkeep/internal/pricing"
)

// handleGetShops returns every shop
func (s *Server) handleGetShops(w http.ResponseWriter, r *http.Request) {
	shops, err := s.store.ListShops(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch shops")
		return
	}
	respondJSON(w, http.StatusOK, shops)
}

// handleCreateShop opens a shop from a preset with freshly rolled stock
func (s *Server) handleCreateShop(w http.ResponseWriter, r *http.Request) {
	var req models.ShopCreate
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.PresetID == "" {
		respondError(w, http.StatusBadRequest, "preset_id is required")
		return
	}

	// Validate preset exists
	preset, ok := s.presets.Get(req.PresetID)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid preset_id")
		return
	}

	// Default to the preset name
	if req.Name == "" {
		req.Name = preset.Name
	}

	items, err := s.generate(preset, req.Seed)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to roll stock")
		return
	}

	shop, err := s.store.CreateShop(r.Context(), &req, items)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create shop")
		return
	}

	logGMAction(r, "opened shop "+shop.ID)
	respondJSON(w, http.StatusCreated, shop)
}

// handleGetShop returns a shop by ID
func (s *Server) handleGetShop(w http.ResponseWriter, r *http.Request) {
	shop, ok := s.loadShop(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, shop)
}

// handleUpdateShop updates an existing shop
func (s *Server) handleUpdateShop(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadShop(w, r)
	if !ok {
		return
	}

	var update models.ShopUpdate
	if err := decodeJSON(r, &update); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.store.UpdateShop(r.Context(), existing.ID, &update); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update shop")
		return
	}
	logGMAction(r, "updated shop "+existing.ID)

	// Return updated shop
	updated, _ := s.store.GetShop(r.Context(), existing.ID)
	respondJSON(w, http.StatusOK, updated)
}

// handleRestockShop replaces a shop's stock with a fresh roll from its preset
func (s *Server) handleRestockShop(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadShop(w, r)
	if !ok {
		return
	}

	var req models.RestockRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	preset, ok := s.presets.Get(existing.PresetID)
	if !ok {
		respondError(w, http.StatusConflict, "Shop preset no longer exists")
		return
	}

	items, err := s.generate(preset, req.Seed)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to roll stock")
		return
	}

	if err := s.store.RestockShop(r.Context(), existing.ID, items); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to restock shop")
		return
	}
	logGMAction(r, "restocked shop "+existing.ID)

	updated, _ := s.store.GetShop(r.Context(), existing.ID)
	respondJSON(w, http.StatusOK, updated)
}

// handleGetQuotes prices a shop's current stock under its preset's terms
func (s *Server) handleGetQuotes(w http.ResponseWriter, r *http.Request) {
	shop, ok := s.loadShop(w, r)
	if !ok {
		return
	}

	preset, ok := s.presets.Get(shop.PresetID)
	if !ok {
		preset = models.ShopPreset{}
		preset.Normalize()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"shop_id":        shop.ID,
		"price_modifier": preset.PriceModifier,
		"buyback_rate":   preset.BuybackRate,
		"quotes":         pricing.QuoteAll(shop.Stock, preset),
	})
}

// handleDeleteShop deletes a shop by ID
func (s *Server) handleDeleteShop(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadShop(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteShop(r.Context(), existing.ID); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete shop")
		return
	}
	logGMAction(r, "deleted shop "+existing.ID)

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleGetShopByCode returns an open shop by share code
func (s *Server) handleGetShopByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	shop, err := s.store.GetShopByShareCode(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch shop")
		return
	}
	if shop == nil || !shop.IsOpen {
		respondError(w, http.StatusNotFound, "Shop not found")
		return
	}

	respondJSON(w, http.StatusOK, shop)
}

// loadShop fetches the shop named by the id URL param, answering 404/500 itself
func (s *Server) loadShop(w http.ResponseWriter, r *http.Request) (*models.Shop, bool) {
	shop, err := s.store.GetShop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch shop")
		return nil, false
	}
	if shop == nil {
		respondError(w, http.StatusNotFound, "Shop not found")
		return nil, false
	}
	return shop, true
}
