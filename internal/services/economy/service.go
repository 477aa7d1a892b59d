package economy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/storage"
)

// Service owns the points balance and inventory of the active profile.
// Every mutation is written through to storage before it becomes visible.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.Mutex
	wallet *model.Wallet // nil while no profile is active
}

// New creates a new economy service with no active wallet
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger.With(slog.String("component", "economy-service")),
	}
}

// Switch replaces the in-memory wallet with the persisted wallet of profile.
// An empty profile clears the wallet. Profiles without a stored wallet start
// at zero.
func (s *Service) Switch(ctx context.Context, profile model.ProfileName) error {
	if profile == "" {
		s.Clear()
		return nil
	}

	// Held across the load so a concurrent write cannot land between the
	// read and the swap.
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, err := s.storage.GetWallet(ctx, profile)
	if errors.Is(err, model.ErrWalletNotFound) {
		wallet = model.NewWallet(profile)
	} else if err != nil {
		return fmt.Errorf("loading wallet: %w", err)
	}
	s.wallet = wallet

	s.logger.Info("wallet switched",
		slog.String("profile", string(profile)),
		slog.Int("points", wallet.Points),
		slog.Int("inventory_size", len(wallet.Inventory)),
	)
	return nil
}

// Clear drops the active wallet. Reads return zero values afterwards.
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = nil
}

// Balance returns the active balance, or 0 with no active profile
func (s *Service) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return 0
	}
	return s.wallet.Points
}

// Inventory returns the owned item ids of the active profile
func (s *Service) Inventory() []model.ItemID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return []model.ItemID{}
	}
	return s.wallet.Clone().Inventory
}

// Owns returns true if the active profile owns the item
func (s *Service) Owns(id model.ItemID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wallet != nil && s.wallet.Owns(id)
}

// Wallet returns a snapshot of the active wallet
func (s *Service) Wallet() (*model.Wallet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wallet == nil {
		return nil, false
	}
	return s.wallet.Clone(), true
}

// AddPoints credits the active wallet. Inert with no active profile.
func (s *Service) AddPoints(ctx context.Context, amount int) error {
	return s.mutate(ctx, func(w *model.Wallet) bool {
		w.Credit(amount)
		return true
	}, slog.String("op", "add_points"), slog.Int("amount", amount))
}

// SubtractPoints debits the active wallet, clamping the balance at zero
func (s *Service) SubtractPoints(ctx context.Context, amount int) error {
	return s.mutate(ctx, func(w *model.Wallet) bool {
		w.Debit(amount)
		return true
	}, slog.String("op", "subtract_points"), slog.Int("amount", amount))
}

// AddToInventory inserts an item. Adding an owned item changes nothing.
func (s *Service) AddToInventory(ctx context.Context, id model.ItemID) error {
	return s.mutate(ctx, func(w *model.Wallet) bool {
		return w.AddItem(id)
	}, slog.String("op", "add_to_inventory"), slog.String("item", string(id)))
}

// Redeem debits cost and adds the item in a single write. It fails when no
// profile is active, the item is owned, or the balance cannot cover cost.
func (s *Service) Redeem(ctx context.Context, id model.ItemID, cost int) (*model.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wallet == nil {
		return nil, model.ErrNoActiveProfile
	}
	if s.wallet.Owns(id) {
		return nil, model.ErrAlreadyOwned
	}
	if s.wallet.Points < cost {
		return nil, model.ErrInsufficientPoints
	}

	next := s.wallet.Clone()
	next.Debit(cost)
	next.AddItem(id)

	if err := s.storage.SaveWallet(ctx, next); err != nil {
		return nil, fmt.Errorf("saving wallet: %w", err)
	}
	s.wallet = next

	s.logger.Info("item redeemed",
		slog.String("profile", string(next.Profile)),
		slog.String("item", string(id)),
		slog.Int("cost", cost),
		slog.Int("points", next.Points),
	)
	return next.Clone(), nil
}

// mutate applies fn to a copy of the active wallet and persists it.
// fn returns false when nothing changed.
func (s *Service) mutate(ctx context.Context, fn func(w *model.Wallet) bool, attrs ...any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.wallet == nil {
		return nil
	}

	next := s.wallet.Clone()
	if !fn(next) {
		return nil
	}

	if err := s.storage.SaveWallet(ctx, next); err != nil {
		s.logger.Error("failed to save wallet",
			slog.String("profile", string(next.Profile)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving wallet: %w", err)
	}
	s.wallet = next

	s.logger.Debug("wallet updated",
		append(attrs,
			slog.String("profile", string(next.Profile)),
			slog.Int("points", next.Points),
		)...,
	)
	return nil
}
