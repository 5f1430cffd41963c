// Package catalog serves the merged item catalog presets resolve against.
//
// The catalog is the embedded built-in list followed by campaign-custom
// entries. Lookups are exact, case-sensitive and first-match.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/meur/shopkeep/internal/collection"
	"github.com/meur/shopkeep/internal/models"
)

//go:embed data/items.json
var builtinJSON []byte

// Builtin returns the built-in 5e item list
func Builtin() ([]models.RepoItem, error) {
	var items []models.RepoItem
	if err := json.Unmarshal(builtinJSON, &items); err != nil {
		return nil, fmt.Errorf("decode builtin catalog: %w", err)
	}
	return items, nil
}

// Catalog merges built-in and custom items
type Catalog struct {
	builtin []models.RepoItem
	custom  *collection.List[models.RepoItem]
}

// New creates a catalog with custom items persisted through store (nil for memory only)
func New(builtin []models.RepoItem, store collection.Persister[models.RepoItem]) *Catalog {
	return &Catalog{
		builtin: builtin,
		custom:  collection.New(func(it models.RepoItem) string { return it.Name }, store),
	}
}

// Load reads custom items from the persister
func (c *Catalog) Load(ctx context.Context) error {
	return c.custom.Load(ctx)
}

// Items returns built-in items followed by custom items
func (c *Catalog) Items() []models.RepoItem {
	custom := c.custom.All()
	items := make([]models.RepoItem, 0, len(c.builtin)+len(custom))
	items = append(items, c.builtin...)
	return append(items, custom...)
}

// Custom returns only the campaign-custom items
func (c *Catalog) Custom() []models.RepoItem {
	return c.custom.All()
}

// Lookup finds the first item named exactly name
func (c *Catalog) Lookup(name string) (models.RepoItem, bool) {
	for _, item := range c.Items() {
		if item.Name == name {
			return item, true
		}
	}
	return models.RepoItem{}, false
}

// AddCustom adds a campaign item and returns it as stored.
// Names are unique across built-in and custom entries.
func (c *Catalog) AddCustom(ctx context.Context, item models.RepoItem) (models.RepoItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return models.RepoItem{}, ErrNameRequired
	}
	if c.isBuiltin(item.Name) {
		return models.RepoItem{}, fmt.Errorf("item %q is built in: %w", item.Name, collection.ErrDuplicate)
	}
	if err := c.custom.Add(ctx, item); err != nil {
		return models.RepoItem{}, err
	}
	return item, nil
}

// UpdateCustom replaces the campaign item called name and returns it as stored.
// An empty name in item keeps the current one.
func (c *Catalog) UpdateCustom(ctx context.Context, name string, item models.RepoItem) (models.RepoItem, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		item.Name = name
	}
	if item.Name != name && c.isBuiltin(item.Name) {
		return models.RepoItem{}, fmt.Errorf("item %q is built in: %w", item.Name, collection.ErrDuplicate)
	}
	if err := c.custom.Update(ctx, name, item); err != nil {
		return models.RepoItem{}, err
	}
	return item, nil
}

func (c *Catalog) isBuiltin(name string) bool {
	for _, item := range c.builtin {
		if item.Name == name {
			return true
		}
	}
	return false
}

// DeleteCustom removes the campaign item called name
func (c *Catalog) DeleteCustom(ctx context.Context, name string) error {
	return c.custom.Delete(ctx, name)
}
