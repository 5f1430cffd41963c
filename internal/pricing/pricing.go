// Package pricing converts item value strings into coin amounts and applies
// a merchant's trade terms.
package pricing

import (
	"regexp"
	"strings"

	"github.com/meur/shopkeep/internal/models"
	"github.com/shopspring/decimal"
)

// Copper pieces per denomination
var denominations = []struct {
	unit   string
	copper int64
}{
	{"pp", 1000},
	{"gp", 100},
	{"ep", 50},
	{"sp", 10},
	{"cp", 1},
}

var valueRegex = regexp.MustCompile(`^\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(pp|gp|ep|sp|cp)\s*$`)

// ParseValue converts a display value like "1,500 gp" to copper pieces.
// Empty or unparseable values are worth nothing.
func ParseValue(value string) decimal.Decimal {
	m := valueRegex.FindStringSubmatch(strings.ToLower(value))
	if m == nil {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return decimal.Zero
	}
	for _, d := range denominations {
		if d.unit == m[2] {
			return amount.Mul(decimal.NewFromInt(d.copper))
		}
	}
	return decimal.Zero
}

// Format renders copper in the largest denomination that divides it evenly.
// Electrum is skipped since merchants do not quote in it.
func Format(copper decimal.Decimal) string {
	copper = copper.Floor()
	if copper.Sign() <= 0 {
		return "0 cp"
	}
	for _, d := range denominations {
		if d.unit == "ep" || d.unit == "pp" {
			continue
		}
		unit := decimal.NewFromInt(d.copper)
		if copper.Mod(unit).IsZero() {
			return withThousands(copper.Div(unit).String()) + " " + d.unit
		}
	}
	return withThousands(copper.String()) + " cp"
}

// Apply scales a value string by rate and returns the rounded-down copper amount
func Apply(value string, rate float64) decimal.Decimal {
	return ParseValue(value).Mul(decimal.NewFromFloat(rate)).Floor()
}

// Quote prices one stock line under a preset's trade terms
func Quote(item models.Item, preset models.ShopPreset) models.PriceQuote {
	return models.PriceQuote{
		ItemID:       item.ID,
		Name:         item.Name,
		Qty:          item.Qty,
		ListValue:    item.Value,
		SellPrice:    Format(Apply(item.Value, preset.PriceModifier)),
		BuybackPrice: Format(Apply(item.Value, preset.BuybackRate)),
	}
}

// QuoteAll prices every stock line
func QuoteAll(stock []models.Item, preset models.ShopPreset) []models.PriceQuote {
	quotes := make([]models.PriceQuote, 0, len(stock))
	for _, item := range stock {
		quotes = append(quotes, Quote(item, preset))
	}
	return quotes
}

func withThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
