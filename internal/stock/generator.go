// Package stock turns shop presets into concrete merchant inventory.
//
// Generation is driven entirely by an injected Source so a fixed sequence of
// draws always reproduces the same stock.
package stock

import (
	"math"

	"github.com/google/uuid"
	"github.com/meur/shopkeep/internal/models"
)

// Defaults applied to custom preset items with missing fields
const (
	DefaultName     = "Unknown Item"
	DefaultValue    = "0 gp"
	DefaultCategory = "Other"
	DefaultType     = "Misc"
)

// MaxQtyVariance bounds the variance used for a quantity roll
const MaxQtyVariance = 1 << 20

// Generator rolls stock from presets
type Generator struct {
	src   Source
	newID func() string
}

// Option configures a Generator
type Option func(*Generator)

// WithIDFunc overrides how item instance ids are minted
func WithIDFunc(fn func() string) Option {
	return func(g *Generator) {
		if fn != nil {
			g.newID = fn
		}
	}
}

// New creates a generator drawing from src
func New(src Source, opts ...Option) *Generator {
	g := &Generator{
		src:   src,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateFromPreset rolls stock for preset against repository using src.
func GenerateFromPreset(preset models.ShopPreset, repository []models.RepoItem, src Source) []models.Item {
	return New(src).Generate(preset, repository)
}

// Generate returns the items stocked this run, in preset order.
// Entries that miss their appearance roll or resolve to nothing are skipped.
func (g *Generator) Generate(preset models.ShopPreset, repository []models.RepoItem) []models.Item {
	chance := float64(preset.StockChance())
	stock := make([]models.Item, 0, len(preset.Items))

	for _, entry := range preset.Items {
		if g.draw()*100 >= chance {
			continue
		}

		variance := min(max(entry.QtyVariance, 0), MaxQtyVariance)
		offset := int(math.Floor(g.draw()*float64(2*variance+1))) - variance
		qty := addQty(entry.DefaultQty, offset)

		item, ok := g.resolve(entry, repository)
		if !ok {
			continue
		}
		item.Qty = qty
		stock = append(stock, item)
	}

	return stock
}

// addQty returns base+offset floored at 1, saturating instead of wrapping
func addQty(base, offset int) int {
	switch {
	case offset > 0 && base > math.MaxInt-offset:
		return math.MaxInt
	case offset < 0 && base < math.MinInt-offset:
		return 1
	}
	return max(1, base+offset)
}

func (g *Generator) resolve(entry models.ShopPresetItem, repository []models.RepoItem) (models.Item, bool) {
	if entry.RepositoryItemID != "" {
		repo, ok := lookup(repository, entry.RepositoryItemID)
		if !ok {
			return models.Item{}, false
		}
		return models.Item{
			ID:                 g.newID(),
			Name:               repo.Name,
			Category:           repo.Category,
			Type:               repo.Type,
			Weight:             repo.Weight,
			Value:              repo.Value,
			Damage:             repo.Damage,
			AC:                 repo.AC,
			Properties:         repo.Properties,
			RequiresAttunement: repo.RequiresAttunement,
		}, true
	}

	if entry.CustomItem != nil {
		c := entry.CustomItem
		return models.Item{
			ID:                 g.newID(),
			Name:               orDefault(c.Name, DefaultName),
			Category:           orDefault(c.Category, DefaultCategory),
			Type:               orDefault(c.Type, DefaultType),
			Weight:             c.Weight,
			Value:              orDefault(c.Value, DefaultValue),
			Damage:             c.Damage,
			AC:                 c.AC,
			Properties:         c.Properties,
			RequiresAttunement: c.RequiresAttunement,
			Charges:            c.Charges,
			MaxCharges:         c.MaxCharges,
			Notes:              c.Notes,
		}, true
	}

	return models.Item{}, false
}

// draw guards against sources that stray outside [0,1)
func (g *Generator) draw() float64 {
	if g.src == nil {
		return 0
	}
	v := g.src.Float64()
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

func lookup(repository []models.RepoItem, name string) (models.RepoItem, bool) {
	for _, item := range repository {
		if item.Name == name {
			return item, true
		}
	}
	return models.RepoItem{}, false
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
