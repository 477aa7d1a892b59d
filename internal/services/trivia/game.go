package trivia

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/santaworkshop/internal/dependencies/clock"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/session"
)

// Config holds configuration for the trivia game
type Config struct {
	Questions       []model.TriviaQuestion
	AdvanceDelay    time.Duration
	PointsPerAnswer int
}

// DefaultConfig returns the default quiz
func DefaultConfig() Config {
	return Config{
		Questions:       Questions,
		AdvanceDelay:    1500 * time.Millisecond,
		PointsPerAnswer: 20,
	}
}

// Game is a turn-based quiz. Each question takes one answer; the quiz moves
// on after a short delay and awards points once at the end.
type Game struct {
	cfg     Config
	clock   clock.Clock
	awarder session.Awarder
	logger  *slog.Logger
	group   *session.Group
	events  session.Broadcaster

	mu       sync.Mutex
	runID    model.RunID
	epoch    uint64
	status   model.SessionStatus
	index    int
	answered bool
	selected int
	correct  int
	awarded  int
}

// New creates a new trivia game
func New(clk clock.Clock, awarder session.Awarder, cfg Config, logger *slog.Logger) *Game {
	if cfg.PointsPerAnswer == 0 {
		cfg.PointsPerAnswer = DefaultConfig().PointsPerAnswer
	}
	return &Game{
		cfg:      cfg,
		clock:    clk,
		awarder:  awarder,
		logger:   logger.With(slog.String("component", "trivia")),
		group:    session.NewGroup(clk),
		status:   model.SessionIdle,
		selected: -1,
	}
}

// Subscribe registers an observer for quiz events
func (g *Game) Subscribe(o session.Observer) {
	g.events.Subscribe(o)
}

// Start begins a new quiz, abandoning any quiz in progress. A quiz with no
// questions finishes immediately with nothing awarded.
func (g *Game) Start(ctx context.Context) model.TriviaState {
	g.mu.Lock()
	g.group.StopAll()
	g.epoch++
	g.runID = model.RunID(uuid.NewString())
	g.status = model.SessionRunning
	if len(g.cfg.Questions) == 0 {
		g.status = model.SessionFinished
	}
	g.index = 0
	g.answered = false
	g.selected = -1
	g.correct = 0
	g.awarded = 0
	state := g.stateLocked()
	g.mu.Unlock()

	g.logger.Info("trivia started", slog.String("run_id", string(state.RunID)))
	g.emit(model.EventSessionStarted, state)
	return state
}

// Answer submits an answer for the current question. Answers after the
// first for a question are ignored.
func (g *Game) Answer(ctx context.Context, option int) (model.TriviaState, error) {
	g.mu.Lock()

	if g.status != model.SessionRunning {
		g.mu.Unlock()
		return model.TriviaState{}, model.ErrSessionNotRunning
	}

	question := g.cfg.Questions[g.index]
	if option < 0 || option >= len(question.Options) {
		g.mu.Unlock()
		return model.TriviaState{}, model.ErrInvalidOption
	}

	if g.answered {
		state := g.stateLocked()
		g.mu.Unlock()
		return state, nil
	}

	g.answered = true
	g.selected = option
	if option == question.Answer {
		g.correct++
	}

	epoch := g.epoch
	g.group.After(g.cfg.AdvanceDelay, func() { g.advance(epoch) })

	state := g.stateLocked()
	g.mu.Unlock()

	g.emit(model.EventScoreChanged, state)
	return state, nil
}

// Stop abandons the quiz in progress without awarding points. A pending
// advance is cancelled and will not fire.
func (g *Game) Stop() bool {
	g.mu.Lock()
	if g.status != model.SessionRunning {
		g.mu.Unlock()
		return false
	}
	g.group.StopAll()
	g.epoch++
	g.status = model.SessionIdle
	g.answered = false
	g.selected = -1
	state := g.stateLocked()
	g.mu.Unlock()

	g.logger.Info("trivia stopped",
		slog.String("run_id", string(state.RunID)),
		slog.Int("correct", state.Correct),
	)
	g.emit(model.EventSessionStopped, state)
	return true
}

// PendingTimers returns the number of scheduled callbacks
func (g *Game) PendingTimers() int {
	return g.group.Pending()
}

// State returns a snapshot of the quiz
func (g *Game) State() model.TriviaState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Game) advance(epoch uint64) {
	g.mu.Lock()
	if g.status != model.SessionRunning || g.epoch != epoch {
		g.mu.Unlock()
		return
	}

	g.index++
	g.answered = false
	g.selected = -1

	if g.index < len(g.cfg.Questions) {
		state := g.stateLocked()
		g.mu.Unlock()
		g.emit(model.EventStateChanged, state)
		return
	}

	g.status = model.SessionFinished
	g.awarded = g.correct * g.cfg.PointsPerAnswer
	state := g.stateLocked()
	g.mu.Unlock()

	g.logger.Info("trivia finished",
		slog.String("run_id", string(state.RunID)),
		slog.Int("correct", state.Correct),
		slog.Int("awarded", state.Awarded),
	)
	if state.Awarded > 0 {
		if err := g.awarder.AddPoints(context.Background(), state.Awarded); err != nil {
			g.logger.Error("failed to award points",
				slog.String("run_id", string(state.RunID)),
				slog.String("error", err.Error()),
			)
		}
	}
	g.emit(model.EventSessionFinished, state)
}

func (g *Game) stateLocked() model.TriviaState {
	state := model.TriviaState{
		RunID:         g.runID,
		Status:        g.status,
		QuestionIndex: g.index,
		QuestionCount: len(g.cfg.Questions),
		Answered:      g.answered,
		Selected:      g.selected,
		Correct:       g.correct,
		Awarded:       g.awarded,
	}
	if g.status == model.SessionRunning {
		q := g.cfg.Questions[g.index]
		if !g.answered {
			q.Answer = -1
		}
		state.Question = &q
	}
	return state
}

func (g *Game) emit(eventType model.EventType, state model.TriviaState) {
	g.events.Emit(model.Event{
		Type:      eventType,
		Timestamp: g.clock.Now(),
		Kind:      model.GameTrivia,
		RunID:     state.RunID,
		State: model.SessionState{
			RunID:   state.RunID,
			Kind:    model.GameTrivia,
			Status:  state.Status,
			Score:   state.Correct,
			Awarded: state.Awarded,
		},
	})
}
