package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/session"
	"github.com/mcoot/santaworkshop/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.app.MockRandom.DefaultFloat = 0.99 // no catcher spawns unless queued
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.Require().NoError(s.app.Close())
}

// Test: logging in creates a wallet that follows the active profile
func (s *IntegrationSuite) TestWalletFollowsActiveProfile() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))
	s.Require().NoError(s.app.Economy.AddPoints(s.ctx, 120))

	s.Require().NoError(s.app.Login(s.ctx, "Bob"))
	s.Equal(0, s.app.Economy.Balance())

	s.Require().NoError(s.app.Login(s.ctx, "Alice"))
	s.Equal(120, s.app.Economy.Balance())

	s.Require().NoError(s.app.Identity.ClearActive(s.ctx))
	_, ok := s.app.Economy.Wallet()
	s.False(ok)

	roster := s.app.Identity.Roster()
	s.Equal([]model.ProfileName{"Alice", "Bob"}, roster.Profiles)
}

// Test: earning, buying and persisting an item end to end
func (s *IntegrationSuite) TestEarnAndBuy() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))
	s.Require().NoError(s.app.Economy.AddPoints(s.ctx, 60))

	wallet, err := s.app.Shop.Purchase(s.ctx, "hat")
	s.Require().NoError(err)
	s.Equal(10, wallet.Points)
	s.Equal([]model.ItemID{"hat"}, wallet.Inventory)

	_, err = s.app.Shop.Purchase(s.ctx, "hat")
	s.ErrorIs(err, model.ErrAlreadyOwned)

	_, err = s.app.Shop.Purchase(s.ctx, "tree")
	s.ErrorIs(err, model.ErrInsufficientPoints)

	stored, err := s.app.Storage.GetWallet(s.ctx, "Alice")
	s.Require().NoError(err)
	s.Equal(10, stored.Points)
	s.Equal([]model.ItemID{"hat"}, stored.Inventory)
}

// Test: a full catcher run awards its score to the active wallet exactly once
func (s *IntegrationSuite) TestCatcherRunAwardsWallet() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))

	s.app.MockRandom.QueueFloat(0.0, 0.7, 0.5, 0.0) // one cookie
	s.app.Catcher.Start(s.ctx)
	s.app.MockClock.Advance(session.ReferenceFrame)

	s.True(s.app.Catcher.Catch(1))

	s.app.MockClock.Advance(30 * time.Second)

	state := s.app.Catcher.State()
	s.Equal(model.SessionFinished, state.Status)
	s.Equal(20, state.Awarded)
	s.Equal(20, s.app.Economy.Balance())

	_, ok := s.app.Catcher.Finish(s.ctx)
	s.False(ok)
	s.Equal(20, s.app.Economy.Balance())
}

// Test: snowball hits are multiplied on award
func (s *IntegrationSuite) TestSnowballFinishAppliesMultiplier() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))

	s.app.MockRandom.QueueIntn(4, 0)
	s.app.Snowball.Start(s.ctx)
	s.True(s.app.Snowball.Whack(4))

	summary, ok := s.app.Snowball.Finish(s.ctx)
	s.Require().True(ok)
	s.Equal(1, summary.FinalScore)
	s.Equal(5, summary.Awarded)
	s.Equal(5, s.app.Economy.Balance())
}

// Test: stopping a run tears it down without an award
func (s *IntegrationSuite) TestStopDoesNotAward() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))

	s.app.MockRandom.QueueIntn(2, 0)
	s.app.Snowball.Start(s.ctx)
	s.True(s.app.Snowball.Whack(2))
	s.True(s.app.Snowball.Stop())

	s.app.MockClock.Advance(time.Minute)
	s.Equal(0, s.app.Economy.Balance())
	s.Zero(s.app.Snowball.Session().PendingTimers())
}

// Test: a perfect trivia round pays 20 points per answer
func (s *IntegrationSuite) TestPerfectTriviaRound() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))

	s.app.Trivia.Start(s.ctx)
	for _, answer := range []int{1, 0, 2, 2, 1} {
		_, err := s.app.Trivia.Answer(s.ctx, answer)
		s.Require().NoError(err)
		s.app.MockClock.Advance(1500 * time.Millisecond)
	}

	state := s.app.Trivia.State()
	s.Equal(model.SessionFinished, state.Status)
	s.Equal(5, state.Correct)
	s.Equal(100, s.app.Economy.Balance())
}

// Test: closing the app cancels turn-based delays so nothing is awarded afterwards
func (s *IntegrationSuite) TestCloseCancelsTurnGameTimers() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))

	s.app.Trivia.Start(s.ctx)
	for i, answer := range []int{1, 0, 2, 2, 1} {
		_, err := s.app.Trivia.Answer(s.ctx, answer)
		s.Require().NoError(err)
		if i < 4 {
			s.app.MockClock.Advance(1500 * time.Millisecond)
		}
	}
	s.app.Memory.Start(s.ctx)
	_, err := s.app.Memory.Reveal(s.ctx, 0)
	s.Require().NoError(err)
	_, err = s.app.Memory.Reveal(s.ctx, 1)
	s.Require().NoError(err)

	s.Equal(1, s.app.Trivia.PendingTimers())
	s.Equal(1, s.app.Memory.PendingTimers())

	s.Require().NoError(s.app.Close())
	s.Zero(s.app.Trivia.PendingTimers())
	s.Zero(s.app.Memory.PendingTimers())
	s.Zero(s.app.MockClock.PendingTimers())

	s.app.MockClock.Advance(time.Minute)
	s.Zero(s.app.Economy.Balance())
	s.Equal(model.SessionIdle, s.app.Trivia.State().Status)
	s.Equal(model.SessionIdle, s.app.Memory.State().Status)
}

// Test: a profile loaded from storage is restored with its wallet
func (s *IntegrationSuite) TestLoadRestoresSession() {
	s.Require().NoError(s.app.Login(s.ctx, "Alice"))
	s.Require().NoError(s.app.Economy.AddPoints(s.ctx, 75))

	restored := newWithDependencies(s.app.Storage, s.app.MockClock, s.app.MockRandom, session.DefaultConfig(), testutil.NopLogger())
	defer func() { _ = restored.Close() }()
	s.Require().NoError(restored.Identity.Load(s.ctx))

	active, ok := restored.Identity.Active()
	s.True(ok)
	s.Equal(model.ProfileName("Alice"), active)
	s.Equal(75, restored.Economy.Balance())
}
