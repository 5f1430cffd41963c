package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/meur/shopkeep/internal/auth"
	"github.com/meur/shopkeep/internal/catalog"
	"github.com/meur/shopkeep/internal/collection"
	"github.com/meur/shopkeep/internal/presets"
	"github.com/meur/shopkeep/internal/stock"
	"github.com/meur/shopkeep/internal/storage"
)

// Options tunes the HTTP surface
type Options struct {
	AllowedOrigins []string
	GMSecret       string // Empty disables GM checks
}

// Server holds the HTTP server dependencies
type Server struct {
	store   *storage.Store
	catalog *catalog.Catalog
	presets *presets.Service
	opts    Options
	router  chi.Router

	// newSource builds the draw source for one generation request
	newSource func(seed *int64) (stock.Source, error)
}

// New creates a new API server
func New(store *storage.Store, cat *catalog.Catalog, presetSvc *presets.Service, opts Options) *Server {
	s := &Server{
		store:     store,
		catalog:   cat,
		presets:   presetSvc,
		opts:      opts,
		router:    chi.NewRouter(),
		newSource: requestSource,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Router exposes the underlying router so callers can mount extra routes
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	gm := auth.RequireGM(s.opts.GMSecret, respondError)

	s.router.Route("/api", func(r chi.Router) {
		// Catalog
		r.Get("/catalog", s.handleGetCatalog)
		r.Get("/catalog/suggest", s.handleSuggest)
		r.Get("/catalog/custom", s.handleGetCustomItems)
		r.With(gm).Post("/catalog/custom", s.handleCreateCustomItem)
		r.With(gm).Put("/catalog/custom/{name}", s.handleUpdateCustomItem)
		r.With(gm).Delete("/catalog/custom/{name}", s.handleDeleteCustomItem)

		// Presets
		r.Get("/presets", s.handleGetPresets)
		r.With(gm).Post("/presets", s.handleCreatePreset)
		r.Get("/presets/{id}", s.handleGetPreset)
		r.With(gm).Put("/presets/{id}", s.handleUpdatePreset)
		r.With(gm).Delete("/presets/{id}", s.handleDeletePreset)
		r.Get("/presets/{id}/check", s.handleCheckPreset)
		r.Post("/presets/{id}/generate", s.handleGenerateStock)

		// Shops
		r.With(gm).Get("/shops", s.handleGetShops)
		r.With(gm).Post("/shops", s.handleCreateShop)
		r.Get("/shops/{id}", s.handleGetShop)
		r.With(gm).Put("/shops/{id}", s.handleUpdateShop)
		r.With(gm).Delete("/shops/{id}", s.handleDeleteShop)
		r.With(gm).Post("/shops/{id}/restock", s.handleRestockShop)
		r.Get("/shops/{id}/quotes", s.handleGetQuotes)

		// Share links
		r.Get("/s/{code}", s.handleGetShopByCode)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func requestSource(seed *int64) (stock.Source, error) {
	if seed != nil {
		return stock.NewSeededSource(*seed), nil
	}
	return stock.NewSource()
}

// logGMAction records a campaign change made under a GM token.
// Without a token (auth disabled) there is no campaign to attribute it to.
func logGMAction(r *http.Request, action string) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		log.Printf("GM: %s", action)
		return
	}
	log.Printf("GM [campaign %s]: %s", claims.CampaignID, action)
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondWriteError maps a collection write error to a response.
// Persist failures still report the optimistic change as applied.
func respondWriteError(w http.ResponseWriter, err error, what string) {
	switch {
	case errors.Is(err, collection.ErrNotFound):
		respondError(w, http.StatusNotFound, what+" not found")
	case errors.Is(err, collection.ErrDuplicate):
		respondError(w, http.StatusConflict, what+" already exists")
	case errors.Is(err, collection.ErrPersist):
		log.Printf("Persisting %s failed, keeping local change: %v", what, err)
		respondJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":   "Failed to save " + what,
			"applied": true,
		})
	default:
		respondError(w, http.StatusInternalServerError, "Failed to save "+what)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
