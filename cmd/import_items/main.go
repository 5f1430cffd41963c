package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/meur/shopkeep/internal/app"
	"github.com/meur/shopkeep/internal/collection"
	"github.com/meur/shopkeep/internal/config"
	"github.com/meur/shopkeep/internal/models"
)

// SRDEquipment is one entry of an SRD-style equipment dump
type SRDEquipment struct {
	Name              string `json:"name"`
	EquipmentCategory struct {
		Name string `json:"name"`
	} `json:"equipment_category"`
	WeaponCategory string `json:"weapon_category"`
	WeaponRange    string `json:"weapon_range"`
	ArmorCategory  string `json:"armor_category"`
	GearCategory   struct {
		Name string `json:"name"`
	} `json:"gear_category"`
	Cost struct {
		Quantity float64 `json:"quantity"`
		Unit     string  `json:"unit"`
	} `json:"cost"`
	Weight float64 `json:"weight"`
	Damage *struct {
		DamageDice string `json:"damage_dice"`
		DamageType struct {
			Name string `json:"name"`
		} `json:"damage_type"`
	} `json:"damage"`
	ArmorClass *struct {
		Base int `json:"base"`
	} `json:"armor_class"`
	Properties []struct {
		Name string `json:"name"`
	} `json:"properties"`
	RequiresAttunement bool `json:"requires_attunement"`
}

type equipmentRoot struct {
	Equipment []SRDEquipment `json:"equipment"`
}

var spaceRegex = regexp.MustCompile(`\s+`)

func cleanName(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

func itemType(e SRDEquipment) string {
	switch {
	case e.WeaponCategory != "":
		return cleanName(e.WeaponCategory + " " + e.WeaponRange)
	case e.ArmorCategory != "":
		if e.ArmorCategory == "Shield" {
			return "Shield"
		}
		return e.ArmorCategory + " Armor"
	case e.GearCategory.Name != "":
		return e.GearCategory.Name
	default:
		return "Misc"
	}
}

func toRepoItem(e SRDEquipment) models.RepoItem {
	item := models.RepoItem{
		Name:               cleanName(e.Name),
		Category:           cleanName(e.EquipmentCategory.Name),
		Type:               itemType(e),
		Weight:             e.Weight,
		RequiresAttunement: e.RequiresAttunement,
	}
	if item.Category == "" {
		item.Category = "Other"
	}
	if e.Cost.Unit != "" {
		item.Value = fmt.Sprintf("%s %s", strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", e.Cost.Quantity), "0"), "."), e.Cost.Unit)
	} else {
		item.Value = "0 gp"
	}
	if e.Damage != nil && e.Damage.DamageDice != "" {
		item.Damage = strings.TrimSpace(e.Damage.DamageDice + " " + strings.ToLower(e.Damage.DamageType.Name))
	}
	if e.ArmorClass != nil {
		item.AC = e.ArmorClass.Base
	}
	var props []string
	for _, p := range e.Properties {
		props = append(props, p.Name)
	}
	item.Properties = strings.Join(props, ", ")
	return item
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	dumpPath := flag.String("equipment", "data/equipment.json", "Equipment JSON path")
	flag.Parse()
	cfg.DBPath = *dbPath

	data, err := os.ReadFile(*dumpPath)
	if err != nil {
		log.Fatalf("Failed to read equipment: %v", err)
	}

	var root equipmentRoot
	if err := json.Unmarshal(data, &root); err != nil {
		log.Fatalf("Failed to parse equipment: %v", err)
	}

	ctx := context.Background()
	a, err := app.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to storage: %v", err)
	}
	defer a.Close()

	imported, skipped := 0, 0
	for _, e := range root.Equipment {
		item := toRepoItem(e)
		if item.Name == "" {
			skipped++
			continue
		}
		if _, err := a.Catalog.AddCustom(ctx, item); err != nil {
			if errors.Is(err, collection.ErrDuplicate) {
				skipped++
				continue
			}
			log.Fatalf("Failed to import %s: %v", item.Name, err)
		}
		imported++
	}

	fmt.Printf("✓ Imported %d items (%d skipped)\n", imported, skipped)
}
