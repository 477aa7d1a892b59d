package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/santaworkshop/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "santa.db")
	cfg := DefaultConfig()
	cfg.Path = s.path

	store, err := New(cfg)
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func (s *StorageSuite) reopen() {
	s.Require().NoError(s.storage.Close())
	cfg := DefaultConfig()
	cfg.Path = s.path
	store, err := New(cfg)
	s.Require().NoError(err)
	s.storage = store
}

// Profile tests

func (s *StorageSuite) TestGetProfilesEmpty() {
	profiles, err := s.storage.GetProfiles(s.ctx)
	s.Require().NoError(err)
	s.Empty(profiles)
}

func (s *StorageSuite) TestSaveProfilesOverwrites() {
	_ = s.storage.SaveProfiles(s.ctx, []model.ProfileName{"Alice"})
	s.Require().NoError(s.storage.SaveProfiles(s.ctx, []model.ProfileName{"Alice", "Bob"}))

	profiles, err := s.storage.GetProfiles(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.ProfileName{"Alice", "Bob"}, profiles)
}

// Active profile tests

func (s *StorageSuite) TestActiveProfileRoundTrip() {
	_, err := s.storage.GetActiveProfile(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveProfile)

	s.Require().NoError(s.storage.SaveActiveProfile(s.ctx, "Alice"))
	active, err := s.storage.GetActiveProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ProfileName("Alice"), active)

	s.Require().NoError(s.storage.ClearActiveProfile(s.ctx))
	_, err = s.storage.GetActiveProfile(s.ctx)
	s.ErrorIs(err, model.ErrNoActiveProfile)
}

// Wallet tests

func (s *StorageSuite) TestGetWalletNotFound() {
	_, err := s.storage.GetWallet(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrWalletNotFound)
}

func (s *StorageSuite) TestSaveAndGetWallet() {
	wallet := &model.Wallet{Profile: "Alice", Points: 310, Inventory: []model.ItemID{"hat", "sleigh"}}
	s.Require().NoError(s.storage.SaveWallet(s.ctx, wallet))

	retrieved, err := s.storage.GetWallet(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(310, retrieved.Points)
	s.Equal([]model.ItemID{"hat", "sleigh"}, retrieved.Inventory)
}

func (s *StorageSuite) TestSaveWalletUpdatesExistingRow() {
	_ = s.storage.SaveWallet(s.ctx, &model.Wallet{Profile: "Alice", Points: 10})
	_ = s.storage.SaveWallet(s.ctx, &model.Wallet{Profile: "Alice", Points: 20, Inventory: []model.ItemID{"elf"}})

	retrieved, err := s.storage.GetWallet(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(20, retrieved.Points)
	s.Equal([]model.ItemID{"elf"}, retrieved.Inventory)
}

func (s *StorageSuite) TestStateSurvivesReopen() {
	_ = s.storage.SaveProfiles(s.ctx, []model.ProfileName{"Alice"})
	_ = s.storage.SaveActiveProfile(s.ctx, "Alice")
	_ = s.storage.SaveWallet(s.ctx, &model.Wallet{Profile: "Alice", Points: 42, Inventory: []model.ItemID{"star"}})

	s.reopen()

	profiles, err := s.storage.GetProfiles(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.ProfileName{"Alice"}, profiles)

	active, err := s.storage.GetActiveProfile(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.ProfileName("Alice"), active)

	wallet, err := s.storage.GetWallet(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(42, wallet.Points)
	s.Equal([]model.ItemID{"star"}, wallet.Inventory)
}
