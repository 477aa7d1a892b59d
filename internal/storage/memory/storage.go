package memory

import (
	"context"
	"sync"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	profiles []model.ProfileName
	active   model.ProfileName
	wallets  map[model.ProfileName]*model.Wallet
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles: []model.ProfileName{},
		wallets:  make(map[model.ProfileName]*model.Wallet),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile roster operations

func (s *Storage) GetProfiles(ctx context.Context) ([]model.ProfileName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.ProfileName, len(s.profiles))
	copy(result, s.profiles)
	return result, nil
}

func (s *Storage) SaveProfiles(ctx context.Context, profiles []model.ProfileName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles = make([]model.ProfileName, len(profiles))
	copy(s.profiles, profiles)
	return nil
}

// Active profile operations

func (s *Storage) GetActiveProfile(ctx context.Context) (model.ProfileName, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.active == "" {
		return "", model.ErrNoActiveProfile
	}
	return s.active, nil
}

func (s *Storage) SaveActiveProfile(ctx context.Context, name model.ProfileName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = name
	return nil
}

func (s *Storage) ClearActiveProfile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = ""
	return nil
}

// Wallet operations

func (s *Storage) GetWallet(ctx context.Context, profile model.ProfileName) (*model.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wallet, ok := s.wallets[profile]
	if !ok {
		return nil, model.ErrWalletNotFound
	}
	return wallet.Clone(), nil
}

func (s *Storage) SaveWallet(ctx context.Context, wallet *model.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[wallet.Profile] = wallet.Clone()
	return nil
}
