package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/meur/shopkeep/internal/app"
	"github.com/meur/shopkeep/internal/collection"
	"github.com/meur/shopkeep/internal/config"
	"github.com/meur/shopkeep/internal/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	seedsDir := flag.String("seeds", "./seeds", "Seeds directory")
	flag.Parse()
	cfg.DBPath = *dbPath

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer a.Close()

	// Seed custom items first so presets can reference them
	var items []models.RepoItem
	if err := readSeed(filepath.Join(*seedsDir, "custom_items.json"), &items); err != nil {
		log.Printf("Warning: failed to read custom items: %v", err)
	}
	for _, item := range items {
		if _, err := a.Catalog.AddCustom(ctx, item); err != nil {
			if errors.Is(err, collection.ErrDuplicate) {
				log.Printf("Skipping existing item %s", item.Name)
				continue
			}
			log.Fatalf("Failed to seed item %s: %v", item.Name, err)
		}
		log.Printf("✓ Seeded item %s", item.Name)
	}

	var presetSeeds []models.ShopPreset
	if err := readSeed(filepath.Join(*seedsDir, "presets.json"), &presetSeeds); err != nil {
		log.Printf("Warning: failed to read presets: %v", err)
	}
	for _, p := range presetSeeds {
		created, err := a.Presets.Add(ctx, p)
		if err != nil {
			if errors.Is(err, collection.ErrDuplicate) {
				log.Printf("Skipping existing preset %s", p.ID)
				continue
			}
			log.Fatalf("Failed to seed preset %s: %v", p.Name, err)
		}
		if dangling := a.Catalog.Dangling(created); len(dangling) > 0 {
			log.Printf("Warning: preset %s has %d lines that will never stock", created.Name, len(dangling))
		}
		log.Printf("✓ Seeded preset %s", created.Name)
	}

	log.Println("Seeding complete!")
}

func readSeed(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
