package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	keys   storage.Keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		keys:   storage.NewKeys(cfg.Namespace),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile roster operations

func (s *Storage) GetProfiles(ctx context.Context) ([]model.ProfileName, error) {
	data, err := s.client.Get(ctx, s.keys.Profiles()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.ProfileName{}, nil
		}
		return nil, err
	}
	return storage.DecodeProfiles(data)
}

func (s *Storage) SaveProfiles(ctx context.Context, profiles []model.ProfileName) error {
	data, err := storage.EncodeProfiles(profiles)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.keys.Profiles(), data, 0).Err()
}

// Active profile operations

func (s *Storage) GetActiveProfile(ctx context.Context) (model.ProfileName, error) {
	name, err := s.client.Get(ctx, s.keys.Active()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNoActiveProfile
		}
		return "", err
	}
	if name == "" {
		return "", model.ErrNoActiveProfile
	}
	return model.ProfileName(name), nil
}

func (s *Storage) SaveActiveProfile(ctx context.Context, name model.ProfileName) error {
	return s.client.Set(ctx, s.keys.Active(), string(name), 0).Err()
}

func (s *Storage) ClearActiveProfile(ctx context.Context) error {
	return s.client.Del(ctx, s.keys.Active()).Err()
}

// Wallet operations

func (s *Storage) GetWallet(ctx context.Context, profile model.ProfileName) (*model.Wallet, error) {
	values, err := s.client.MGet(ctx, s.keys.Points(profile), s.keys.Inventory(profile)).Result()
	if err != nil {
		return nil, err
	}

	points, hasPoints := values[0].(string)
	inventory, hasInventory := values[1].(string)
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

	// Points and inventory are written together so a reload never sees half a wallet
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.keys.Points(wallet.Profile), storage.EncodePoints(wallet.Points), 0)
	pipe.Set(ctx, s.keys.Inventory(wallet.Profile), inventory, 0)
	_, err = pipe.Exec(ctx)
	return err
}
