package economy

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/storage"
	"github.com/mcoot/santaworkshop/internal/storage/memory"
	"github.com/mcoot/santaworkshop/internal/testutil"
)

var errBroken = errors.New("storage offline")

// failingStorage rejects wallet writes
type failingStorage struct {
	storage.Storage
}

func (f failingStorage) SaveWallet(ctx context.Context, wallet *model.Wallet) error {
	return errBroken
}

// gatedStorage pauses after reading a wallet until release is closed
type gatedStorage struct {
	storage.Storage
	entered chan struct{}
	release chan struct{}
}

func (g gatedStorage) GetWallet(ctx context.Context, profile model.ProfileName) (*model.Wallet, error) {
	wallet, err := g.Storage.GetWallet(ctx, profile)
	close(g.entered)
	<-g.release
	return wallet, err
}

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) login(name model.ProfileName) {
	s.Require().NoError(s.service.Switch(s.ctx, name))
}

// No active profile

func (s *ServiceSuite) TestReadsWithoutProfileAreZero() {
	s.Equal(0, s.service.Balance())
	s.Empty(s.service.Inventory())
	_, ok := s.service.Wallet()
	s.False(ok)
}

func (s *ServiceSuite) TestMutationsWithoutProfileAreInert() {
	s.Require().NoError(s.service.AddPoints(s.ctx, 50))
	s.Require().NoError(s.service.AddToInventory(s.ctx, "hat"))

	s.Equal(0, s.service.Balance())
	s.Empty(s.service.Inventory())
}

// Points

func (s *ServiceSuite) TestBalanceClampsAfterEverySubtract() {
	s.login("Alice")

	ops := []struct {
		add    bool
		amount int
		want   int
	}{
		{true, 30, 30},
		{false, 50, 0},
		{true, 20, 20},
		{false, 5, 15},
		{false, 100, 0},
		{true, 0, 0},
	}

	for _, op := range ops {
		if op.add {
			s.Require().NoError(s.service.AddPoints(s.ctx, op.amount))
		} else {
			s.Require().NoError(s.service.SubtractPoints(s.ctx, op.amount))
		}
		s.Equal(op.want, s.service.Balance())
		s.GreaterOrEqual(s.service.Balance(), 0)
	}
}

func (s *ServiceSuite) TestPointsAreWrittenThrough() {
	s.login("Alice")
	_ = s.service.AddPoints(s.ctx, 70)

	wallet, err := s.storage.GetWallet(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(70, wallet.Points)
}

// Inventory

func (s *ServiceSuite) TestAddToInventoryIsIdempotent() {
	s.login("Alice")

	_ = s.service.AddToInventory(s.ctx, "hat")
	once := s.service.Inventory()
	_ = s.service.AddToInventory(s.ctx, "hat")

	s.Equal(once, s.service.Inventory())
	s.Equal([]model.ItemID{"hat"}, s.service.Inventory())
	s.True(s.service.Owns("hat"))
}

// Profile switching

func (s *ServiceSuite) TestSwitchNeverMixesBalances() {
	s.login("Alice")
	_ = s.service.AddPoints(s.ctx, 50)
	_ = s.service.AddToInventory(s.ctx, "tree")

	s.login("Bob")
	s.Equal(0, s.service.Balance())
	s.Empty(s.service.Inventory())

	s.login("Alice")
	s.Equal(50, s.service.Balance())
	s.Equal([]model.ItemID{"tree"}, s.service.Inventory())
}

func (s *ServiceSuite) TestSwitchLoadsStoredWallet() {
	_ = s.storage.SaveWallet(s.ctx, &model.Wallet{Profile: "Bob", Points: 12, Inventory: []model.ItemID{"elf"}})

	s.login("Bob")

	s.Equal(12, s.service.Balance())
	s.True(s.service.Owns("elf"))
}

func (s *ServiceSuite) TestSwitchToEmptyClears() {
	s.login("Alice")
	_ = s.service.AddPoints(s.ctx, 5)

	s.login("")

	s.Equal(0, s.service.Balance())
	s.Require().NoError(s.service.AddPoints(s.ctx, 5))
	wallet, _ := s.storage.GetWallet(s.ctx, "Alice")
	s.Equal(5, wallet.Points)
}

// Redeem

func (s *ServiceSuite) TestRedeem() {
	s.login("Alice")
	_ = s.service.AddPoints(s.ctx, 200)

	wallet, err := s.service.Redeem(s.ctx, "tree", 150)
	s.Require().NoError(err)
	s.Equal(50, wallet.Points)
	s.True(wallet.Owns("tree"))
	s.Equal(50, s.service.Balance())
}

func (s *ServiceSuite) TestRedeemErrors() {
	_, err := s.service.Redeem(s.ctx, "hat", 50)
	s.ErrorIs(err, model.ErrNoActiveProfile)

	s.login("Alice")
	_, err = s.service.Redeem(s.ctx, "hat", 50)
	s.ErrorIs(err, model.ErrInsufficientPoints)

	_ = s.service.AddPoints(s.ctx, 100)
	_, err = s.service.Redeem(s.ctx, "hat", 50)
	s.Require().NoError(err)

	_, err = s.service.Redeem(s.ctx, "hat", 50)
	s.ErrorIs(err, model.ErrAlreadyOwned)
	s.Equal(50, s.service.Balance())
}

// Storage failures

func (s *ServiceSuite) TestFailedWriteLeavesWalletUnchanged() {
	service := New(failingStorage{Storage: s.storage}, testutil.NopLogger())
	s.Require().NoError(service.Switch(s.ctx, "Alice"))

	err := service.AddPoints(s.ctx, 10)
	s.ErrorIs(err, errBroken)
	s.Equal(0, service.Balance())
}

// Concurrency

func (s *ServiceSuite) TestSwitchDoesNotLoseConcurrentCredit() {
	gated := gatedStorage{
		Storage: s.storage,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	service := New(gated, testutil.NopLogger())
	service.wallet = model.NewWallet("Alice")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.NoError(service.Switch(s.ctx, "Alice"))
	}()

	<-gated.entered
	credited := make(chan struct{})
	go func() {
		defer wg.Done()
		s.NoError(service.AddPoints(s.ctx, 10))
		close(credited)
	}()

	select {
	case <-credited:
		s.Fail("credit landed while a switch was loading")
	case <-time.After(20 * time.Millisecond):
	}

	close(gated.release)
	wg.Wait()

	s.Equal(10, service.Balance())
	stored, err := s.storage.GetWallet(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(10, stored.Points)
}
