package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/meur/shopkeep/internal/app"
	"github.com/meur/shopkeep/internal/config"
	"github.com/meur/shopkeep/internal/models"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	fix := flag.Bool("fix", false, "Rewrite dangling references to their closest suggestion")
	flag.Parse()
	cfg.DBPath = *dbPath

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to storage: %v", err)
	}
	defer a.Close()

	clean, broken, fixed := 0, 0, 0
	for _, preset := range a.Presets.List() {
		dangling := a.Catalog.Dangling(preset)
		if len(dangling) == 0 {
			clean++
			continue
		}
		broken++

		fmt.Printf("%s%s%s (%s)\n", colorYellow, preset.Name, colorReset, preset.ID)
		preset.Items = append([]models.ShopPresetItem(nil), preset.Items...)
		changed := false
		for _, d := range dangling {
			ref := d.Reference
			if ref == "" {
				ref = "<no item>"
			}
			fmt.Printf("  %s✗%s line %d: %s", colorRed, colorReset, d.Index+1, ref)
			if len(d.Suggestions) > 0 {
				fmt.Printf(" (did you mean %s?)", strings.Join(d.Suggestions, ", "))
			}
			fmt.Println()

			if *fix && d.Reference != "" && len(d.Suggestions) > 0 {
				preset.Items[d.Index].RepositoryItemID = d.Suggestions[0]
				fmt.Printf("    %s→%s %s\n", colorGreen, colorReset, d.Suggestions[0])
				changed = true
			}
		}

		if changed {
			if err := savePreset(ctx, a, preset); err != nil {
				log.Printf("Failed to update %s: %v", preset.Name, err)
				continue
			}
			fixed++
		}
	}

	fmt.Printf("Clean: %d presets\n", clean)
	fmt.Printf("With dangling lines: %d presets\n", broken)
	if *fix {
		fmt.Printf("Fixed: %d presets\n", fixed)
	}
	if broken > fixed {
		os.Exit(1)
	}
}

func savePreset(ctx context.Context, a *app.App, preset models.ShopPreset) error {
	_, err := a.Presets.Update(ctx, preset.ID, preset)
	return err
}
