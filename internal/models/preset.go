package models

import "time"

// Preset trade term bounds and defaults
const (
	MinPriceModifier     = 0.5
	MaxPriceModifier     = 2.0
	DefaultPriceModifier = 1.0
	MinBuybackRate       = 0.1
	MaxBuybackRate       = 1.0
	DefaultBuybackRate   = 0.5
	DefaultStockChance   = 100
)

// ShopPreset is a reusable merchant template: candidate stock plus trade terms
type ShopPreset struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Items              []ShopPresetItem `json:"items"`
	PriceModifier      float64          `json:"price_modifier"`
	BuybackRate        float64          `json:"buyback_rate"`
	StockRandomization *int             `json:"stock_randomization,omitempty"` // nil = always stocked
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ShopPresetItem is one candidate line in a preset.
// RepositoryItemID is a catalog item name; CustomItem is used when it is empty.
type ShopPresetItem struct {
	RepositoryItemID string      `json:"repository_item_id,omitempty"`
	CustomItem       *CustomItem `json:"custom_item,omitempty"`
	DefaultQty       int         `json:"default_qty"`
	QtyVariance      int         `json:"qty_variance,omitempty"`
}

// StockChance returns the per-item appearance percentage
func (p ShopPreset) StockChance() int {
	if p.StockRandomization == nil {
		return DefaultStockChance
	}
	return *p.StockRandomization
}

// Normalize clamps trade terms and quantities into the ranges the editor allows.
func (p *ShopPreset) Normalize() {
	if p.PriceModifier == 0 {
		p.PriceModifier = DefaultPriceModifier
	}
	p.PriceModifier = clampFloat(p.PriceModifier, MinPriceModifier, MaxPriceModifier)

	if p.BuybackRate == 0 {
		p.BuybackRate = DefaultBuybackRate
	}
	p.BuybackRate = clampFloat(p.BuybackRate, MinBuybackRate, MaxBuybackRate)

	if p.StockRandomization != nil {
		chance := min(max(*p.StockRandomization, 0), 100)
		p.StockRandomization = &chance
	}

	if p.Items == nil {
		p.Items = []ShopPresetItem{}
	}
	for i := range p.Items {
		p.Items[i].DefaultQty = max(p.Items[i].DefaultQty, 1)
		p.Items[i].QtyVariance = max(p.Items[i].QtyVariance, 0)
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
