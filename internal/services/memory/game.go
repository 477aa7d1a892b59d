package memory

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/santaworkshop/internal/dependencies/clock"
	"github.com/mcoot/santaworkshop/internal/dependencies/random"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/session"
)

// Symbols are the card faces; each appears twice in a deck
var Symbols = []model.Symbol{
	"gift", "tree", "snowflake", "star", "bell", "candy", "heart", "music",
}

// Config holds configuration for the memory game
type Config struct {
	Symbols       []model.Symbol
	MatchDelay    time.Duration
	MismatchDelay time.Duration
	WinAward      int
}

// DefaultConfig returns the default deck and timings
func DefaultConfig() Config {
	return Config{
		Symbols:       Symbols,
		MatchDelay:    500 * time.Millisecond,
		MismatchDelay: 1000 * time.Millisecond,
		WinAward:      100,
	}
}

// Game is a pairs game. Two cards can be face up at once; matches stay
// up, mismatches flip back.
type Game struct {
	cfg     Config
	clock   clock.Clock
	random  random.Random
	awarder session.Awarder
	logger  *slog.Logger
	group   *session.Group
	events  session.Broadcaster

	mu         sync.Mutex
	runID      model.RunID
	epoch      uint64
	status     model.SessionStatus
	cards      []model.MemoryCard
	revealed   []int
	processing bool
	moves      int
	awarded    int
}

// New creates a new memory game
func New(clk clock.Clock, rnd random.Random, awarder session.Awarder, cfg Config, logger *slog.Logger) *Game {
	return &Game{
		cfg:     cfg,
		clock:   clk,
		random:  rnd,
		awarder: awarder,
		logger:  logger.With(slog.String("component", "memory")),
		group:   session.NewGroup(clk),
		status:  model.SessionIdle,
	}
}

// Subscribe registers an observer for game events
func (g *Game) Subscribe(o session.Observer) {
	g.events.Subscribe(o)
}

// Start deals a freshly shuffled deck
func (g *Game) Start(ctx context.Context) model.MemoryState {
	g.mu.Lock()
	g.group.StopAll()
	g.epoch++
	g.runID = model.RunID(uuid.NewString())
	g.status = model.SessionRunning
	g.cards = g.deal()
	g.revealed = nil
	g.processing = false
	g.moves = 0
	g.awarded = 0
	state := g.stateLocked()
	g.mu.Unlock()

	g.logger.Info("memory started",
		slog.String("run_id", string(state.RunID)),
		slog.Int("cards", len(state.Cards)),
	)
	g.emit(model.EventSessionStarted, state)
	return state
}

// Reveal turns a card face up. Requests while two cards are up, or for a
// card that is already up or matched, are ignored.
func (g *Game) Reveal(ctx context.Context, id int) (model.MemoryState, error) {
	g.mu.Lock()

	if g.status != model.SessionRunning {
		g.mu.Unlock()
		return model.MemoryState{}, model.ErrSessionNotRunning
	}
	if id < 0 || id >= len(g.cards) {
		g.mu.Unlock()
		return model.MemoryState{}, model.ErrInvalidCard
	}

	card := &g.cards[id]
	if g.processing || card.Flipped || card.Matched {
		state := g.stateLocked()
		g.mu.Unlock()
		return state, nil
	}

	card.Flipped = true
	g.revealed = append(g.revealed, id)

	if len(g.revealed) == 2 {
		g.processing = true
		g.moves++

		first, second := g.revealed[0], g.revealed[1]
		epoch := g.epoch
		if g.cards[first].Symbol == g.cards[second].Symbol {
			g.group.After(g.cfg.MatchDelay, func() { g.settle(epoch, true) })
		} else {
			g.group.After(g.cfg.MismatchDelay, func() { g.settle(epoch, false) })
		}
	}

	state := g.stateLocked()
	g.mu.Unlock()

	g.emit(model.EventStateChanged, state)
	return state, nil
}

// Stop abandons the game in progress without awarding points. Cards
// waiting to settle stay as they are.
func (g *Game) Stop() bool {
	g.mu.Lock()
	if g.status != model.SessionRunning {
		g.mu.Unlock()
		return false
	}
	g.group.StopAll()
	g.epoch++
	g.status = model.SessionIdle
	g.processing = false
	state := g.stateLocked()
	g.mu.Unlock()

	g.logger.Info("memory stopped",
		slog.String("run_id", string(state.RunID)),
		slog.Int("moves", state.Moves),
	)
	g.emit(model.EventSessionStopped, state)
	return true
}

// PendingTimers returns the number of scheduled callbacks
func (g *Game) PendingTimers() int {
	return g.group.Pending()
}

// State returns a snapshot of the table
func (g *Game) State() model.MemoryState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Game) deal() []model.MemoryCard {
	symbols := make([]model.Symbol, 0, 2*len(g.cfg.Symbols))
	symbols = append(symbols, g.cfg.Symbols...)
	symbols = append(symbols, g.cfg.Symbols...)

	random.Shuffle(g.random, len(symbols), func(i, j int) {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	})

	cards := make([]model.MemoryCard, len(symbols))
	for i, symbol := range symbols {
		cards[i] = model.MemoryCard{ID: i, Symbol: symbol}
	}
	return cards
}

// settle resolves the two revealed cards
func (g *Game) settle(epoch uint64, matched bool) {
	g.mu.Lock()
	if g.status != model.SessionRunning || g.epoch != epoch {
		g.mu.Unlock()
		return
	}

	for _, id := range g.revealed {
		if matched {
			g.cards[id].Matched = true
		} else {
			g.cards[id].Flipped = false
		}
	}
	g.revealed = nil
	g.processing = false

	if !g.allMatchedLocked() {
		state := g.stateLocked()
		g.mu.Unlock()
		g.emit(model.EventStateChanged, state)
		return
	}

	g.status = model.SessionFinished
	g.awarded = g.cfg.WinAward
	state := g.stateLocked()
	g.mu.Unlock()

	g.logger.Info("memory won",
		slog.String("run_id", string(state.RunID)),
		slog.Int("moves", state.Moves),
	)
	if err := g.awarder.AddPoints(context.Background(), state.Awarded); err != nil {
		g.logger.Error("failed to award points",
			slog.String("run_id", string(state.RunID)),
			slog.String("error", err.Error()),
		)
	}
	g.emit(model.EventSessionFinished, state)
}

func (g *Game) allMatchedLocked() bool {
	for _, card := range g.cards {
		if !card.Matched {
			return false
		}
	}
	return true
}

func (g *Game) stateLocked() model.MemoryState {
	cards := make([]model.MemoryCard, len(g.cards))
	for i, card := range g.cards {
		if !card.Flipped && !card.Matched {
			card.Symbol = ""
		}
		cards[i] = card
	}
	return model.MemoryState{
		RunID:      g.runID,
		Status:     g.status,
		Cards:      cards,
		Processing: g.processing,
		Moves:      g.moves,
		Awarded:    g.awarded,
	}
}

func (g *Game) emit(eventType model.EventType, state model.MemoryState) {
	matched := 0
	for _, card := range state.Cards {
		if card.Matched {
			matched++
		}
	}
	g.events.Emit(model.Event{
		Type:      eventType,
		Timestamp: g.clock.Now(),
		Kind:      model.GameMemory,
		RunID:     state.RunID,
		State: model.SessionState{
			RunID:   state.RunID,
			Kind:    model.GameMemory,
			Status:  state.Status,
			Score:   matched / 2,
			Awarded: state.Awarded,
		},
	})
}
