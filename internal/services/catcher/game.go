package catcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcoot/santaworkshop/internal/dependencies/clock"
	"github.com/mcoot/santaworkshop/internal/dependencies/random"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/session"
)

const (
	spawnChance = 0.03
	coalAbove   = 0.8
	cookieAbove = 0.6
	spawnY      = -50.0
	itemOffset  = 40.0
	minSpeed    = 2.0
	speedRange  = 3.0
)

// Config holds the play area geometry
type Config struct {
	Width    float64
	Height   float64
	Duration time.Duration
}

// DefaultConfig returns the default play area
func DefaultConfig() Config {
	return Config{
		Width:    300,
		Height:   600,
		Duration: 30 * time.Second,
	}
}

// rules implement the falling-item game on top of the timed session
type rules struct {
	cfg    Config
	random random.Random

	items  []model.FallingItem
	nextID int
}

func (r *rules) Kind() model.GameKind    { return model.GameCatcher }
func (r *rules) Duration() time.Duration { return r.cfg.Duration }
func (r *rules) Multiplier() int         { return 1 }

func (r *rules) Reset(run *session.Run) {
	r.items = nil
	r.nextID = 0
}

// Frame moves every item down, drops the ones that left the play area and
// maybe spawns a new one.
func (r *rules) Frame(run *session.Run, delta float64) {
	kept := r.items[:0]
	for _, item := range r.items {
		item.Y += item.Speed * delta
		if item.Y < r.cfg.Height {
			kept = append(kept, item)
		}
	}
	r.items = kept

	if r.random.Float64() < spawnChance {
		r.items = append(r.items, r.spawn())
	}
}

func (r *rules) spawn() model.FallingItem {
	kind := model.FallingGift
	switch roll := r.random.Float64(); {
	case roll > coalAbove:
		kind = model.FallingCoal
	case roll > cookieAbove:
		kind = model.FallingCookie
	}

	r.nextID++
	return model.FallingItem{
		ID:    r.nextID,
		X:     max(0, r.random.Float64()*r.cfg.Width-itemOffset),
		Y:     spawnY,
		Speed: minSpeed + r.random.Float64()*speedRange,
		Kind:  kind,
	}
}

// catch removes an item and returns it
func (r *rules) catch(id int) (model.FallingItem, bool) {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return item, true
		}
	}
	return model.FallingItem{}, false
}

// Game is the gift catcher: click falling gifts and cookies, avoid coal
type Game struct {
	rules   *rules
	session *session.Session
	logger  *slog.Logger
}

// New creates a new gift catcher game
func New(
	clk clock.Clock,
	rnd random.Random,
	awarder session.Awarder,
	cfg Config,
	sessionCfg session.Config,
	logger *slog.Logger,
) *Game {
	r := &rules{cfg: cfg, random: rnd}
	return &Game{
		rules:   r,
		session: session.New(r, clk, awarder, sessionCfg, logger),
		logger:  logger.With(slog.String("component", "catcher")),
	}
}

// Session exposes the underlying timed session
func (g *Game) Session() *session.Session {
	return g.session
}

// Start begins a new run
func (g *Game) Start(ctx context.Context) model.CatcherState {
	g.session.Start(ctx)
	return g.State()
}

// Finish ends the run early and awards the score
func (g *Game) Finish(ctx context.Context) (model.SessionSummary, bool) {
	return g.session.Finish(ctx)
}

// Stop abandons the run without an award
func (g *Game) Stop() bool {
	return g.session.Stop()
}

// Catch captures a falling item. Returns false if the session is not
// running or the item is gone.
func (g *Game) Catch(id int) bool {
	caught := false
	g.session.Interact(func(run *session.Run) {
		item, ok := g.rules.catch(id)
		if !ok {
			return
		}
		caught = true
		run.AddScore(item.Kind.ScoreDelta())
	})
	return caught
}

// State returns a snapshot of the session and live items
func (g *Game) State() model.CatcherState {
	var state model.CatcherState
	g.session.Inspect(func(s model.SessionState) {
		state.SessionState = s
		state.Items = make([]model.FallingItem, len(g.rules.items))
		copy(state.Items, g.rules.items)
	})
	return state
}
