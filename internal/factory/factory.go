package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/santaworkshop/internal/api/sse"
	"github.com/mcoot/santaworkshop/internal/dependencies/clock"
	"github.com/mcoot/santaworkshop/internal/dependencies/random"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/catcher"
	"github.com/mcoot/santaworkshop/internal/services/economy"
	"github.com/mcoot/santaworkshop/internal/services/identity"
	"github.com/mcoot/santaworkshop/internal/services/maze"
	"github.com/mcoot/santaworkshop/internal/services/memory"
	"github.com/mcoot/santaworkshop/internal/services/planner"
	"github.com/mcoot/santaworkshop/internal/services/session"
	"github.com/mcoot/santaworkshop/internal/services/shop"
	"github.com/mcoot/santaworkshop/internal/services/snowball"
	"github.com/mcoot/santaworkshop/internal/services/trivia"
	"github.com/mcoot/santaworkshop/internal/storage"
	memorystorage "github.com/mcoot/santaworkshop/internal/storage/memory"
	redisstorage "github.com/mcoot/santaworkshop/internal/storage/redis"
	sqlitestorage "github.com/mcoot/santaworkshop/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Identity   *identity.Service
	Economy    *economy.Service
	Shop       *shop.Service
	Planner    *planner.Service
	Maze       *maze.Game
	Catcher    *catcher.Game
	Snowball   *snowball.Game
	Trivia     *trivia.Game
	Memory     *memory.Game
	HubManager *sse.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds the database file settings (required if StorageType is "sqlite")
	SQLiteConfig *sqlitestorage.Config
	// SessionConfig tunes the timed game engine (optional)
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired and the
// persisted roster loaded
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	sessionCfg := cfg.SessionConfig
	if sessionCfg.FrameInterval == 0 {
		sessionCfg = session.DefaultConfig()
	}

	app := newWithDependencies(store, clock.New(), random.New(), sessionCfg, logger)
	if err := app.Identity.Load(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return app, nil
}

// newStorage creates the configured storage backend
func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memorystorage.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLiteConfig == nil {
			return nil, errors.New("SQLiteConfig required when StorageType is sqlite")
		}
		return sqlitestorage.New(*cfg.SQLiteConfig)
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	identityService := identity.New(store, logger)
	economyService := economy.New(store, logger)
	hubManager := sse.NewHubManager(logger)

	// The wallet follows the logged in profile
	identityService.Subscribe(func(ctx context.Context, active model.ProfileName) error {
		return economyService.Switch(ctx, active)
	})

	catcherGame := catcher.New(clk, rnd, economyService, catcher.DefaultConfig(), sessionCfg, logger)
	snowballGame := snowball.New(clk, rnd, economyService, snowball.DefaultConfig(), sessionCfg, logger)
	triviaGame := trivia.New(clk, economyService, trivia.DefaultConfig(), logger)
	memoryGame := memory.New(clk, rnd, economyService, memory.DefaultConfig(), logger)

	catcherGame.Session().Subscribe(hubManager.GetOrCreateHub(model.GameCatcher).Observer())
	snowballGame.Session().Subscribe(hubManager.GetOrCreateHub(model.GameSnowball).Observer())
	triviaGame.Subscribe(hubManager.GetOrCreateHub(model.GameTrivia).Observer())
	memoryGame.Subscribe(hubManager.GetOrCreateHub(model.GameMemory).Observer())

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Identity:   identityService,
		Economy:    economyService,
		Shop:       shop.New(economyService, logger),
		Planner:    planner.New(logger),
		Maze:       maze.New(rnd, maze.DefaultConfig(), logger),
		Catcher:    catcherGame,
		Snowball:   snowballGame,
		Trivia:     triviaGame,
		Memory:     memoryGame,
		HubManager: hubManager,
	}
}

// Close stops running games, the event hubs and the storage backend
func (a *App) Close() error {
	a.Catcher.Stop()
	a.Snowball.Stop()
	a.Trivia.Stop()
	a.Memory.Stop()
	a.HubManager.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
