package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

const upsertQuery = `INSERT INTO kv (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value`

// Storage is a SQLite-backed implementation of the storage interface.
// Values are kept in a single key/value table using the shared key layout.
type Storage struct {
	db   *sql.DB
	keys storage.Keys
}

// New opens (or creates) the database file and prepares the schema
func New(cfg Config) (*Storage, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// A single writer keeps :memory: databases on one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{
		db:   db,
		keys: storage.NewKeys(cfg.Namespace),
	}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile roster operations

func (s *Storage) GetProfiles(ctx context.Context) ([]model.ProfileName, error) {
	data, ok, err := s.get(ctx, s.keys.Profiles())
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.ProfileName{}, nil
	}
	return storage.DecodeProfiles(data)
}

func (s *Storage) SaveProfiles(ctx context.Context, profiles []model.ProfileName) error {
	data, err := storage.EncodeProfiles(profiles)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, upsertQuery, s.keys.Profiles(), data)
	return err
}

// Active profile operations

func (s *Storage) GetActiveProfile(ctx context.Context) (model.ProfileName, error) {
	name, ok, err := s.get(ctx, s.keys.Active())
	if err != nil {
		return "", err
	}
	if !ok || name == "" {
		return "", model.ErrNoActiveProfile
	}
	return model.ProfileName(name), nil
}

func (s *Storage) SaveActiveProfile(ctx context.Context, name model.ProfileName) error {
	_, err := s.db.ExecContext(ctx, upsertQuery, s.keys.Active(), string(name))
	return err
}

func (s *Storage) ClearActiveProfile(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", s.keys.Active())
	return err
}

// Wallet operations

func (s *Storage) GetWallet(ctx context.Context, profile model.ProfileName) (*model.Wallet, error) {
	points, hasPoints, err := s.get(ctx, s.keys.Points(profile))
	if err != nil {
		return nil, err
	}
	inventory, hasInventory, err := s.get(ctx, s.keys.Inventory(profile))
	if err != nil {
		return nil, err
	}
	if !hasPoints && !hasInventory {
		return nil, model.ErrWalletNotFound
	}

	wallet := model.NewWallet(profile)
	if hasPoints {
		wallet.Points = storage.DecodePoints(points)
	}
	if hasInventory {
		items, err := storage.DecodeInventory(inventory)
		if err != nil {
			return nil, err
		}
		wallet.Inventory = items
	}
	return wallet, nil
}

func (s *Storage) SaveWallet(ctx context.Context, wallet *model.Wallet) error {
	inventory, err := storage.EncodeInventory(wallet.Inventory)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, upsertQuery, s.keys.Points(wallet.Profile), storage.EncodePoints(wallet.Points)); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, upsertQuery, s.keys.Inventory(wallet.Profile), inventory); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Storage) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}
