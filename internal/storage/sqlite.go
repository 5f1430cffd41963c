package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/shopkeep/internal/models"
)

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS presets (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			items TEXT NOT NULL,
			price_modifier REAL NOT NULL,
			buyback_rate REAL NOT NULL,
			stock_randomization INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS custom_items (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shops (
			id TEXT PRIMARY KEY,
			preset_id TEXT NOT NULL,
			name TEXT NOT NULL,
			stock TEXT NOT NULL,
			share_code TEXT UNIQUE NOT NULL,
			is_open INTEGER DEFAULT 1,
			restocked_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shops_share ON shops(share_code)`,
		`CREATE INDEX IF NOT EXISTS idx_shops_preset ON shops(preset_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// --- Presets ---

// PresetTable persists the preset list as whole-list writes
type PresetTable struct {
	s *Store
}

// Presets returns the preset persister
func (s *Store) Presets() PresetTable {
	return PresetTable{s: s}
}

// Load returns all presets in saved order
func (t PresetTable) Load(ctx context.Context) ([]models.ShopPreset, error) {
	rows, err := t.s.db.QueryContext(ctx, `
		SELECT id, name, description, items, price_modifier, buyback_rate, stock_randomization, created_at, updated_at
		FROM presets ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	presets := []models.ShopPreset{}
	for rows.Next() {
		var p models.ShopPreset
		var description sql.NullString
		var items string
		var chance sql.NullInt64
		err := rows.Scan(&p.ID, &p.Name, &description, &items, &p.PriceModifier,
			&p.BuybackRate, &chance, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		p.Description = description.String
		if chance.Valid {
			v := int(chance.Int64)
			p.StockRandomization = &v
		}
		if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
			return nil, fmt.Errorf("preset %s items: %w", p.ID, err)
		}
		presets = append(presets, p)
	}
	return presets, rows.Err()
}

// Save replaces the stored presets with presets
func (t PresetTable) Save(ctx context.Context, presets []models.ShopPreset) error {
	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM presets`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO presets (id, position, name, description, items, price_modifier, buyback_rate, stock_randomization, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range presets {
		items, err := json.Marshal(p.Items)
		if err != nil {
			return fmt.Errorf("preset %s items: %w", p.ID, err)
		}
		var chance sql.NullInt64
		if p.StockRandomization != nil {
			chance = sql.NullInt64{Int64: int64(*p.StockRandomization), Valid: true}
		}
		_, err = stmt.ExecContext(ctx, p.ID, i, p.Name, p.Description, string(items),
			p.PriceModifier, p.BuybackRate, chance, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// --- Custom items ---

// CustomItemTable persists campaign-custom catalog items
type CustomItemTable struct {
	s *Store
}

// CustomItems returns the custom item persister
func (s *Store) CustomItems() CustomItemTable {
	return CustomItemTable{s: s}
}

// Load returns all custom items in saved order
func (t CustomItemTable) Load(ctx context.Context) ([]models.RepoItem, error) {
	rows, err := t.s.db.QueryContext(ctx, `SELECT data FROM custom_items ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.RepoItem{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var item models.RepoItem
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("custom item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save replaces the stored custom items with items
func (t CustomItemTable) Save(ctx context.Context, items []models.RepoItem) error {
	tx, err := t.s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_items`); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO custom_items (name, position, data) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, item.Name, i, string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// --- Shops ---

// generateShareCode creates a short unique share code
func generateShareCode() string {
	u := uuid.New()
	return u.String()[:8]
}

const shopColumns = `id, preset_id, name, stock, share_code, is_open, restocked_at, created_at, updated_at`

// CreateShop stores a new open shop holding stock
func (s *Store) CreateShop(ctx context.Context, req *models.ShopCreate, stock []models.Item) (*models.Shop, error) {
	id := uuid.New().String()
	shareCode := generateShareCode()
	if stock == nil {
		stock = []models.Item{}
	}
	data, err := json.Marshal(stock)
	if err != nil {
		return nil, err
	}
	now := time.Now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO shops (id, preset_id, name, stock, share_code, is_open, restocked_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?, ?, ?)
	`, id, req.PresetID, req.Name, string(data), shareCode, now, now, now)
	if err != nil {
		return nil, err
	}

	return &models.Shop{
		ID:          id,
		PresetID:    req.PresetID,
		Name:        req.Name,
		Stock:       stock,
		ShareCode:   shareCode,
		IsOpen:      true,
		RestockedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetShop returns a shop by ID
func (s *Store) GetShop(ctx context.Context, id string) (*models.Shop, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shopColumns+` FROM shops WHERE id = ?`, id)
	return scanShop(row)
}

// GetShopByShareCode returns a shop by share code
func (s *Store) GetShopByShareCode(ctx context.Context, code string) (*models.Shop, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shopColumns+` FROM shops WHERE share_code = ?`, code)
	return scanShop(row)
}

// ListShops returns every shop, most recently updated first
func (s *Store) ListShops(ctx context.Context) ([]models.Shop, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+shopColumns+` FROM shops ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := []models.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	return shops, rows.Err()
}

// UpdateShop updates an existing shop
func (s *Store) UpdateShop(ctx context.Context, id string, update *models.ShopUpdate) error {
	// Build dynamic update query
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now()}

	if update.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Stock != nil {
		stock, err := json.Marshal(update.Stock)
		if err != nil {
			return err
		}
		sets = append(sets, "stock = ?")
		args = append(args, string(stock))
	}
	if update.IsOpen != nil {
		sets = append(sets, "is_open = ?")
		args = append(args, *update.IsOpen)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE shops SET %s WHERE id = ?", strings.Join(sets, ", "))

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// RestockShop replaces a shop's stock and stamps the restock time
func (s *Store) RestockShop(ctx context.Context, id string, stock []models.Item) error {
	if stock == nil {
		stock = []models.Item{}
	}
	data, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	now := time.Now()
	_, err = s.db.ExecContext(ctx, `
		UPDATE shops SET stock = ?, restocked_at = ?, updated_at = ? WHERE id = ?
	`, string(data), now, now, id)
	return err
}

// DeleteShop deletes a shop by ID
func (s *Store) DeleteShop(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM shops WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShop(row rowScanner) (*models.Shop, error) {
	var shop models.Shop
	var stock string
	var restockedAt sql.NullTime

	err := row.Scan(&shop.ID, &shop.PresetID, &shop.Name, &stock, &shop.ShareCode,
		&shop.IsOpen, &restockedAt, &shop.CreatedAt, &shop.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if restockedAt.Valid {
		shop.RestockedAt = &restockedAt.Time
	}
	if err := json.Unmarshal([]byte(stock), &shop.Stock); err != nil {
		return nil, fmt.Errorf("shop %s stock: %w", shop.ID, err)
	}
	return &shop, nil
}
