package snowball

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
	minUpTime   = 400 * time.Millisecond
	upTimeRange = 800 // milliseconds
)

// Config holds the board layout
type Config struct {
	Slots      int
	Duration   time.Duration
	Multiplier int
}

// DefaultConfig returns the default 3x3 board
func DefaultConfig() Config {
	return Config{
		Slots:      9,
		Duration:   30 * time.Second,
		Multiplier: 5,
	}
}

type rules struct {
	cfg    Config
	random random.Random
	active int
}

func (r *rules) Kind() model.GameKind    { return model.GameSnowball }
func (r *rules) Duration() time.Duration { return r.cfg.Duration }
func (r *rules) Multiplier() int         { return r.cfg.Multiplier }

func (r *rules) Reset(run *session.Run) {
	r.active = model.NoSlot
}

func (r *rules) Started(run *session.Run) {
	r.pop(run)
}

// pop raises a target in a random slot and schedules the next one
func (r *rules) pop(run *session.Run) {
	r.active = r.random.Intn(r.cfg.Slots)
	run.Touch()

	up := minUpTime + time.Duration(r.random.Intn(upTimeRange))*time.Millisecond
	run.After(up, r.pop)
}

// Game is the snowball fight: hit the elf while it is up
type Game struct {
	rules   *rules
	session *session.Session
}

// New creates a new snowball game
func New(
	clk clock.Clock,
	rnd random.Random,
	awarder session.Awarder,
	cfg Config,
	sessionCfg session.Config,
	logger *slog.Logger,
) *Game {
	r := &rules{cfg: cfg, random: rnd, active: model.NoSlot}
	return &Game{
		rules:   r,
		session: session.New(r, clk, awarder, sessionCfg, logger),
	}
}

// Session exposes the underlying timed session
func (g *Game) Session() *session.Session {
	return g.session
}

// Start begins a new run
func (g *Game) Start(ctx context.Context) model.SnowballState {
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

// Whack hits a slot. Only the slot that is up scores, and only once.
func (g *Game) Whack(slot int) bool {
	hit := false
	g.session.Interact(func(run *session.Run) {
		if slot == model.NoSlot || slot != g.rules.active {
			return
		}
		hit = true
		g.rules.active = model.NoSlot
		run.AddScore(1)
	})
	return hit
}

// State returns a snapshot of the board
func (g *Game) State() model.SnowballState {
	var state model.SnowballState
	g.session.Inspect(func(s model.SessionState) {
		state.SessionState = s
		state.Slots = g.rules.cfg.Slots
		state.ActiveSlot = g.rules.active
		if s.Status != model.SessionRunning {
			state.ActiveSlot = model.NoSlot
		}
	})
	return state
}
