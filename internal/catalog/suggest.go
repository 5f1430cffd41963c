package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/meur/shopkeep/internal/models"
)

// Dangling describes a preset line whose catalog reference resolves to nothing
type Dangling struct {
	Index       int      `json:"index"`
	Reference   string   `json:"reference"`
	Suggestions []string `json:"suggestions"`
}

type candidate struct {
	name string
	dist int
}

// Suggest returns up to n catalog names close to name, nearest first.
func (c *Catalog) Suggest(name string, n int) []string {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" || n <= 0 {
		return []string{}
	}

	seen := map[string]bool{}
	var cands []candidate
	for _, item := range c.Items() {
		if seen[item.Name] {
			continue
		}
		seen[item.Name] = true

		compare := strings.ToLower(item.Name)
		dist := levenshtein.ComputeDistance(query, compare)
		if strings.Contains(compare, query) {
			dist = min(dist, 1)
		}
		if dist > distanceLimit(len(query)) {
			continue
		}
		cands = append(cands, candidate{name: item.Name, dist: dist})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].name < cands[j].name
	})

	out := make([]string, 0, min(n, len(cands)))
	for _, cand := range cands[:min(n, len(cands))] {
		out = append(out, cand.name)
	}
	return out
}

// Dangling lists preset lines that stock generation would silently drop
func (c *Catalog) Dangling(preset models.ShopPreset) []Dangling {
	out := []Dangling{}
	for i, entry := range preset.Items {
		if entry.RepositoryItemID == "" {
			if entry.CustomItem == nil {
				out = append(out, Dangling{Index: i, Suggestions: []string{}})
			}
			continue
		}
		if _, ok := c.Lookup(entry.RepositoryItemID); ok {
			continue
		}
		out = append(out, Dangling{
			Index:       i,
			Reference:   entry.RepositoryItemID,
			Suggestions: c.Suggest(entry.RepositoryItemID, 3),
		})
	}
	return out
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
