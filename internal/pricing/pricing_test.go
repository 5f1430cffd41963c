package pricing

import (
	"testing"

	"github.com/meur/shopkeep/internal/models"
	"github.com/shopspring/decimal"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"10 gp", 1000},
		{"1,500 gp", 150000},
		{"5 sp", 50},
		{"1 cp", 1},
		{"1 ep", 50},
		{"5 pp", 5000},
		{"2.5 gp", 250},
		{" 3 GP ", 300},
		{"", 0},
		{"priceless", 0},
		{"10 dollars", 0},
	}

	for _, tt := range tests {
		got := ParseValue(tt.in)
		if !got.Equal(decimal.NewFromInt(tt.want)) {
			t.Fatalf("ParseValue(%q) = %s, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		copper int64
		want   string
	}{
		{0, "0 cp"},
		{-5, "0 cp"},
		{1, "1 cp"},
		{50, "5 sp"},
		{1000, "10 gp"},
		{150000, "1,500 gp"},
		{1234567, "1,234,567 cp"},
		{5000, "50 gp"},
	}

	for _, tt := range tests {
		if got := Format(decimal.NewFromInt(tt.copper)); got != tt.want {
			t.Fatalf("Format(%d) = %q, want %q", tt.copper, got, tt.want)
		}
	}
}

func TestQuoteAppliesTradeTerms(t *testing.T) {
	preset := models.ShopPreset{PriceModifier: 1.5, BuybackRate: 0.5}
	item := models.Item{ID: "i1", Name: "Longsword", Value: "15 gp", Qty: 2}

	q := Quote(item, preset)
	if q.SellPrice != "225 sp" {
		t.Fatalf("unexpected sell price %q", q.SellPrice)
	}
	if q.BuybackPrice != "75 sp" {
		t.Fatalf("unexpected buyback price %q", q.BuybackPrice)
	}
	if q.ItemID != "i1" || q.Qty != 2 || q.ListValue != "15 gp" {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestApplyRoundsDown(t *testing.T) {
	got := Apply("1 cp", 0.5)
	if !got.IsZero() {
		t.Fatalf("expected half a copper to round down to 0, got %s", got)
	}
	if got := QuoteAll(nil, models.ShopPreset{}); len(got) != 0 {
		t.Fatalf("expected no quotes, got %d", len(got))
	}
}
