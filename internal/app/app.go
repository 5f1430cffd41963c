// Package app wires persistence for the commands that share it.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/meur/shopkeep/internal/blobstore"
	"github.com/meur/shopkeep/internal/catalog"
	"github.com/meur/shopkeep/internal/collection"
	"github.com/meur/shopkeep/internal/config"
	"github.com/meur/shopkeep/internal/models"
	"github.com/meur/shopkeep/internal/presets"
	"github.com/meur/shopkeep/internal/storage"
)

// Blob keys for the whole-list documents
const (
	PresetsKey     = "presets.json"
	CustomItemsKey = "custom-items.json"
)

// App bundles the loaded catalog, presets and shop store
type App struct {
	Store   *storage.Store
	Catalog *catalog.Catalog
	Presets *presets.Service
}

// Open connects storage, picks the preset/custom item backend and loads both
func Open(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	var presetStore collection.Persister[models.ShopPreset] = store.Presets()
	var itemStore collection.Persister[models.RepoItem] = store.CustomItems()
	if cfg.UsesBlobStore() {
		client := blobstore.New(cfg.BlobURL, cfg.BlobToken, cfg.BlobTimeout)
		presetStore = blobstore.NewCollection[models.ShopPreset](client, PresetsKey)
		itemStore = blobstore.NewCollection[models.RepoItem](client, CustomItemsKey)
		log.Printf("Presets and custom items persist to %s", cfg.BlobURL)
	}

	builtin, err := catalog.Builtin()
	if err != nil {
		store.Close()
		return nil, err
	}

	a := &App{
		Store:   store,
		Catalog: catalog.New(builtin, itemStore),
		Presets: presets.New(presetStore),
	}
	if err := a.Catalog.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("load custom items: %w", err)
	}
	if err := a.Presets.Load(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("load presets: %w", err)
	}
	return a, nil
}

// Close releases the database
func (a *App) Close() error {
	return a.Store.Close()
}
