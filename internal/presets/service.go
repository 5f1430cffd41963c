// Package presets manages shop presets as an optimistic keyed list.
package presets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meur/shopkeep/internal/collection"
	"github.com/meur/shopkeep/internal/models"
)

// Service holds the preset list and writes it through to a persister
type Service struct {
	list *collection.List[models.ShopPreset]
	now  func() time.Time
}

// New creates a preset service. store may be nil for memory only.
func New(store collection.Persister[models.ShopPreset]) *Service {
	return &Service{
		list: collection.New(func(p models.ShopPreset) string { return p.ID }, store),
		now:  time.Now,
	}
}

// Load replaces local presets with the persisted ones
func (s *Service) Load(ctx context.Context) error {
	return s.list.Load(ctx)
}

// List returns all presets in insertion order
func (s *Service) List() []models.ShopPreset {
	return s.list.All()
}

// Get returns a preset by ID
func (s *Service) Get(id string) (models.ShopPreset, bool) {
	return s.list.Get(id)
}

// Add normalizes and stores a new preset, assigning an ID when missing.
// The returned preset reflects local state even when err wraps collection.ErrPersist.
func (s *Service) Add(ctx context.Context, p models.ShopPreset) (models.ShopPreset, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Normalize()
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	err := s.list.Add(ctx, p)
	return p, err
}

// Update replaces the preset with the given ID
func (s *Service) Update(ctx context.Context, id string, p models.ShopPreset) (models.ShopPreset, error) {
	existing, ok := s.list.Get(id)
	if !ok {
		return models.ShopPreset{}, fmt.Errorf("preset %s: %w", id, collection.ErrNotFound)
	}

	p.ID = id
	p.Normalize()
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now()

	err := s.list.Update(ctx, id, p)
	return p, err
}

// Delete removes the preset with the given ID
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.list.Delete(ctx, id)
}
