package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/meur/shopkeep/internal/app"
	"github.com/meur/shopkeep/internal/config"
	"github.com/meur/shopkeep/internal/pricing"
	"github.com/meur/shopkeep/internal/stock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	presetID := flag.String("preset", "", "Preset ID to roll")
	seed := flag.Int64("seed", 0, "Seed for a reproducible roll (0 = random)")
	asJSON := flag.Bool("json", false, "Print items as JSON")
	flag.Parse()
	cfg.DBPath = *dbPath

	if *presetID == "" {
		log.Fatal("-preset is required")
	}

	a, err := app.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to storage: %v", err)
	}
	defer a.Close()

	preset, ok := a.Presets.Get(*presetID)
	if !ok {
		log.Fatalf("Preset %s not found", *presetID)
	}

	var src stock.Source
	if *seed != 0 {
		src = stock.NewSeededSource(*seed)
	} else {
		src, err = stock.NewSource()
		if err != nil {
			log.Fatalf("Failed to seed random source: %v", err)
		}
	}

	items := stock.GenerateFromPreset(preset, a.Catalog.Items(), src)

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(items); err != nil {
			log.Fatalf("Failed to encode stock: %v", err)
		}
		return
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ITEM\tQTY\tLIST\tSELL\tBUYBACK\n")
	for _, q := range pricing.QuoteAll(items, preset) {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", q.Name, q.Qty, q.ListValue, q.SellPrice, q.BuybackPrice)
	}
	tw.Flush()
	fmt.Printf("%d of %d lines stocked\n", len(items), len(preset.Items))
}
