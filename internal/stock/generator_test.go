package stock

import (
	"fmt"
	"math"
	"testing"

	"github.com/meur/shopkeep/internal/models"
)

func testRepository() []models.RepoItem {
	return []models.RepoItem{
		{Name: "Torch", Category: "Adventuring Gear", Type: "Gear", Weight: 1, Value: "1 cp"},
		{Name: "Longsword", Category: "Weapon", Type: "Martial Melee", Weight: 3, Value: "15 gp", Damage: "1d8 slashing", Properties: "Versatile (1d10)"},
		{Name: "Shield", Category: "Armor", Type: "Shield", Weight: 6, Value: "10 gp", AC: 2},
		{Name: "Wooden Plank", Category: "Other", Type: "Misc", Weight: 5, Value: "1 cp", AC: 0},
	}
}

func counterIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}
}

func chance(v int) *int {
	return &v
}

func TestGenerateScenarioDanglingReference(t *testing.T) {
	preset := models.ShopPreset{
		StockRandomization: chance(100),
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Torch", DefaultQty: 5},
			{RepositoryItemID: "Nonexistent", DefaultQty: 1},
		},
	}

	got := GenerateFromPreset(preset, testRepository(), Constant(0))
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Name != "Torch" || got[0].Qty != 5 {
		t.Fatalf("expected Torch x5, got %s x%d", got[0].Name, got[0].Qty)
	}
	if got[0].ID == "" {
		t.Fatal("expected generated id")
	}
	if got[0].IsAttuned {
		t.Fatal("expected is_attuned false")
	}
}

func TestGenerateUpperVariance(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{
			{CustomItem: &models.CustomItem{Name: "Healing Potion"}, DefaultQty: 10, QtyVariance: 3},
		},
	}

	got := GenerateFromPreset(preset, nil, Constant(0.999999))
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Qty != 13 {
		t.Fatalf("expected qty 13, got %d", got[0].Qty)
	}
}

func TestGenerateQuantityFloor(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{
			{CustomItem: &models.CustomItem{Name: "Rations"}, DefaultQty: 1, QtyVariance: 5},
		},
	}

	got := GenerateFromPreset(preset, nil, Constant(0))
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].Qty != 1 {
		t.Fatalf("expected qty floored to 1, got %d", got[0].Qty)
	}
}

func TestGenerateFullProbabilityKeepsOrder(t *testing.T) {
	preset := models.ShopPreset{
		StockRandomization: chance(100),
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Shield", DefaultQty: 1},
			{RepositoryItemID: "Torch", DefaultQty: 1},
			{CustomItem: &models.CustomItem{Name: "Map"}, DefaultQty: 1},
			{RepositoryItemID: "Longsword", DefaultQty: 1},
		},
	}

	src := NewSeededSource(7)
	for run := 0; run < 50; run++ {
		got := GenerateFromPreset(preset, testRepository(), src)
		want := []string{"Shield", "Torch", "Map", "Longsword"}
		if len(got) != len(want) {
			t.Fatalf("run %d: expected %d items, got %d", run, len(want), len(got))
		}
		for i, name := range want {
			if got[i].Name != name {
				t.Fatalf("run %d: position %d expected %s, got %s", run, i, name, got[i].Name)
			}
		}
	}
}

func TestGenerateZeroProbabilityIsEmpty(t *testing.T) {
	items := make([]models.ShopPresetItem, 25)
	for i := range items {
		items[i] = models.ShopPresetItem{RepositoryItemID: "Torch", DefaultQty: 3}
	}
	preset := models.ShopPreset{StockRandomization: chance(0), Items: items}

	for _, v := range []float64{0, 0.5, 0.999999} {
		if got := GenerateFromPreset(preset, testRepository(), Constant(v)); len(got) != 0 {
			t.Fatalf("draw %v: expected empty stock, got %d items", v, len(got))
		}
	}
}

func TestGenerateAppearanceThreshold(t *testing.T) {
	preset := models.ShopPreset{
		StockRandomization: chance(40),
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Torch", DefaultQty: 2},
			{RepositoryItemID: "Shield", DefaultQty: 1},
		},
	}

	// Torch rolls 39 (in), Shield rolls 40 (out).
	got := GenerateFromPreset(preset, testRepository(), Sequence(0.39, 0, 0.40, 0))
	if len(got) != 1 || got[0].Name != "Torch" {
		t.Fatalf("expected only Torch, got %+v", got)
	}
}

func TestGenerateExcludedItemSkipsQuantityDraw(t *testing.T) {
	preset := models.ShopPreset{
		StockRandomization: chance(50),
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Torch", DefaultQty: 5, QtyVariance: 2},
			{RepositoryItemID: "Shield", DefaultQty: 5, QtyVariance: 2},
		},
	}

	// Torch misses; Shield appears and takes the next draw for quantity.
	got := GenerateFromPreset(preset, testRepository(), Sequence(0.9, 0.1, 0.99))
	if len(got) != 1 || got[0].Name != "Shield" {
		t.Fatalf("expected only Shield, got %+v", got)
	}
	if got[0].Qty != 7 {
		t.Fatalf("expected qty 7, got %d", got[0].Qty)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	preset := models.ShopPreset{
		StockRandomization: chance(60),
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Torch", DefaultQty: 10, QtyVariance: 4},
			{RepositoryItemID: "Longsword", DefaultQty: 2, QtyVariance: 1},
			{RepositoryItemID: "Shield", DefaultQty: 3, QtyVariance: 2},
			{CustomItem: &models.CustomItem{Name: "Wand of Sparks", Charges: 7, MaxCharges: 7}, DefaultQty: 1},
		},
	}

	a := New(NewSeededSource(42), WithIDFunc(counterIDs())).Generate(preset, testRepository())
	b := New(NewSeededSource(42), WithIDFunc(counterIDs())).Generate(preset, testRepository())

	if len(a) != len(b) {
		t.Fatalf("expected same length, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("mismatch at %d: %+v != %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateRepositoryFieldCopy(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Longsword", DefaultQty: 1},
			{RepositoryItemID: "Shield", DefaultQty: 1},
			{RepositoryItemID: "Wooden Plank", DefaultQty: 1},
		},
	}

	got := New(Constant(0), WithIDFunc(counterIDs())).Generate(preset, testRepository())
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}

	sword := got[0]
	if sword.ID != "item-1" || sword.Damage != "1d8 slashing" || sword.Properties != "Versatile (1d10)" {
		t.Fatalf("unexpected sword: %+v", sword)
	}
	if sword.Weight != 3 || sword.Value != "15 gp" || sword.Category != "Weapon" || sword.Type != "Martial Melee" {
		t.Fatalf("unexpected sword fields: %+v", sword)
	}
	if got[1].AC != 2 {
		t.Fatalf("expected shield AC 2, got %d", got[1].AC)
	}
	if got[2].AC != 0 || got[2].Damage != "" {
		t.Fatalf("expected plank without ac or damage, got %+v", got[2])
	}
}

func TestGenerateCustomItemDefaults(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{
			{CustomItem: &models.CustomItem{}, DefaultQty: 2},
			{CustomItem: &models.CustomItem{Name: "Staff of Frost", Value: "500 gp", Charges: 10, MaxCharges: 10, Notes: "Regains 1d6+4 at dawn", RequiresAttunement: true}, DefaultQty: 1},
		},
	}

	got := GenerateFromPreset(preset, nil, Constant(0))
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}

	blank := got[0]
	if blank.Name != DefaultName || blank.Value != DefaultValue || blank.Category != DefaultCategory || blank.Type != DefaultType {
		t.Fatalf("unexpected defaults: %+v", blank)
	}
	if blank.Weight != 0 || blank.RequiresAttunement || blank.IsAttuned {
		t.Fatalf("unexpected defaults: %+v", blank)
	}

	staff := got[1]
	if staff.Charges != 10 || staff.MaxCharges != 10 || staff.Notes == "" || !staff.RequiresAttunement {
		t.Fatalf("expected custom fields copied, got %+v", staff)
	}
	if staff.IsAttuned {
		t.Fatal("expected is_attuned false")
	}
}

func TestGenerateRepositoryReferenceWinsOverCustomItem(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{
			{RepositoryItemID: "Missing", CustomItem: &models.CustomItem{Name: "Fallback"}, DefaultQty: 1},
		},
	}

	if got := GenerateFromPreset(preset, testRepository(), Constant(0)); len(got) != 0 {
		t.Fatalf("expected unresolved reference to drop the entry, got %+v", got)
	}
}

func TestGenerateFreshIDsPerRun(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{{RepositoryItemID: "Torch", DefaultQty: 1}},
	}

	a := GenerateFromPreset(preset, testRepository(), Constant(0))
	b := GenerateFromPreset(preset, testRepository(), Constant(0))
	if a[0].ID == b[0].ID {
		t.Fatalf("expected distinct ids, both %s", a[0].ID)
	}
}

func TestGenerateMalformedPresetsNeverPanic(t *testing.T) {
	presets := []models.ShopPreset{
		{},
		{Items: []models.ShopPresetItem{{}}},
		{StockRandomization: chance(-20), Items: []models.ShopPresetItem{{RepositoryItemID: "Torch"}}},
		{StockRandomization: chance(500), Items: []models.ShopPresetItem{{RepositoryItemID: "Torch", DefaultQty: -10, QtyVariance: -3}}},
		{Items: []models.ShopPresetItem{{RepositoryItemID: "", CustomItem: nil, DefaultQty: 0, QtyVariance: 1 << 20}}},
		{Items: []models.ShopPresetItem{{CustomItem: &models.CustomItem{}, DefaultQty: -1 << 30, QtyVariance: 2}}},
	}
	sources := []Source{Constant(0), Constant(0.5), Constant(0.999999), Constant(1), Constant(-1), NewSeededSource(1), nil}

	for i, preset := range presets {
		for j, src := range sources {
			got := GenerateFromPreset(preset, testRepository(), src)
			for _, item := range got {
				if item.Qty < 1 {
					t.Fatalf("preset %d source %d: qty %d below floor", i, j, item.Qty)
				}
			}
		}
	}
}

func TestGenerateNegativeVarianceTreatedAsZero(t *testing.T) {
	preset := models.ShopPreset{
		Items: []models.ShopPresetItem{{RepositoryItemID: "Torch", DefaultQty: 4, QtyVariance: -3}},
	}

	for _, v := range []float64{0, 0.5, 0.999999} {
		got := GenerateFromPreset(preset, testRepository(), Constant(v))
		if len(got) != 1 || got[0].Qty != 4 {
			t.Fatalf("draw %v: expected qty 4, got %+v", v, got)
		}
	}
}

func TestGenerateQuantityFloorProperty(t *testing.T) {
	src := NewSeededSource(99)
	for qty := 1; qty <= 6; qty++ {
		for variance := 0; variance <= 8; variance++ {
			preset := models.ShopPreset{
				Items: []models.ShopPresetItem{{RepositoryItemID: "Torch", DefaultQty: qty, QtyVariance: variance}},
			}
			for run := 0; run < 20; run++ {
				got := GenerateFromPreset(preset, testRepository(), src)
				if len(got) != 1 {
					t.Fatalf("expected torch to appear, got %d items", len(got))
				}
				if got[0].Qty < 1 || got[0].Qty > qty+variance {
					t.Fatalf("qty %d out of range for %d±%d", got[0].Qty, qty, variance)
				}
			}
		}
	}
}

func TestGenerateExtremeQuantitiesSaturate(t *testing.T) {
	cases := []struct {
		name     string
		qty      int
		variance int
		draw     float64
		want     int
	}{
		{"max default, top draw", math.MaxInt, 1, 0.999999, math.MaxInt},
		{"max default, no variance", math.MaxInt, 0, 0, math.MaxInt},
		{"min default, bottom draw", math.MinInt, 1, 0, 1},
		{"max variance, bottom draw", 1, math.MaxInt, 0, 1},
		{"max variance, top draw", 1, math.MaxInt, 0.999999999999, 1 + MaxQtyVariance},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			preset := models.ShopPreset{
				Items: []models.ShopPresetItem{{RepositoryItemID: "Torch", DefaultQty: tc.qty, QtyVariance: tc.variance}},
			}
			got := GenerateFromPreset(preset, testRepository(), Constant(tc.draw))
			if len(got) != 1 || got[0].Qty != tc.want {
				t.Fatalf("expected qty %d, got %+v", tc.want, got)
			}
		})
	}
}

func TestAddQty(t *testing.T) {
	if got := addQty(math.MaxInt-1, 5); got != math.MaxInt {
		t.Fatalf("expected saturation at MaxInt, got %d", got)
	}
	if got := addQty(math.MinInt+1, -5); got != 1 {
		t.Fatalf("expected floor of 1, got %d", got)
	}
	if got := addQty(3, -1); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}
