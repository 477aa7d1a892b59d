package factory

import (
	"context"
	"time"

	"github.com/mcoot/santaworkshop/internal/dependencies/mocks"
	"github.com/mcoot/santaworkshop/internal/services/session"
	"github.com/mcoot/santaworkshop/internal/storage/memory"
	"github.com/mcoot/santaworkshop/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 12, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// Login adds a profile if needed and makes it active
func (t *TestApp) Login(ctx context.Context, name string) error {
	return t.Identity.SetActive(ctx, name)
}
