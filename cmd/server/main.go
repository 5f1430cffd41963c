package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/meur/shopkeep/internal/api"
	"github.com/meur/shopkeep/internal/app"
	"github.com/meur/shopkeep/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Parse flags
	port := flag.String("port", cfg.Port, "Server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	staticDir := flag.String("static", "", "Directory with the built extension panel to serve at /")
	flag.Parse()
	cfg.Port = *port
	cfg.DBPath = *dbPath

	// Initialize storage
	a, err := app.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer a.Close()

	if cfg.GMSecret == "" {
		log.Printf("GM_TOKEN_SECRET is not set; GM routes are unauthenticated")
	}

	// Create router
	r := api.New(a.Store, a.Catalog, a.Presets, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		GMSecret:       cfg.GMSecret,
	})

	// Serve the built panel (for production deployment)
	if *staticDir != "" {
		FileServer(r.Router(), "/", http.Dir(*staticDir))
	}

	log.Printf("Shopkeep API starting on http://localhost:%s", cfg.Port)
	log.Printf("Database: %s (%d presets, %d custom items)", cfg.DBPath, len(a.Presets.List()), len(a.Catalog.Custom()))

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// FileServer conveniently sets up a http.FileServer handler to serve
// static files from a http.FileSystem.
func FileServer(r chi.Router, path string, root http.FileSystem) {
	if strings.ContainsAny(path, "{}*") {
		panic("FileServer does not permit URL parameters.")
	}

	if path != "/" && path[len(path)-1] != '/' {
		r.Get(path, http.RedirectHandler(path+"/", 301).ServeHTTP)
		path += "/"
	}
	path += "*"

	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		rctx := chi.RouteContext(req.Context())
		pathPrefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
		fs := http.StripPrefix(pathPrefix, http.FileServer(root))
		fs.ServeHTTP(w, req)
	})
}
