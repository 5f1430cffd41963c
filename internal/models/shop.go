package models

import (
	"time"
)

// Shop is a live merchant created from a preset
type Shop struct {
	ID          string     `json:"id"`
	PresetID    string     `json:"preset_id"`
	Name        string     `json:"name"`
	Stock       []Item     `json:"stock"`
	ShareCode   string     `json:"share_code"`
	IsOpen      bool       `json:"is_open"`
	RestockedAt *time.Time `json:"restocked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ShopCreate is the request body for opening a shop from a preset
type ShopCreate struct {
	PresetID string `json:"preset_id"`
	Name     string `json:"name"`
	Seed     *int64 `json:"seed,omitempty"` // Fixed seed for reproducible stock
}

// ShopUpdate is the request body for updating a shop
type ShopUpdate struct {
	Name   *string `json:"name,omitempty"`
	Stock  []Item  `json:"stock,omitempty"`
	IsOpen *bool   `json:"is_open,omitempty"`
}

// RestockRequest is the optional body for regenerating stock
type RestockRequest struct {
	Seed *int64 `json:"seed,omitempty"`
}

// PriceQuote is what a shop charges and pays for one stock line
type PriceQuote struct {
	ItemID       string `json:"item_id"`
	Name         string `json:"name"`
	Qty          int    `json:"qty"`
	ListValue    string `json:"list_value"`
	SellPrice    string `json:"sell_price"`
	BuybackPrice string `json:"buyback_price"`
}
