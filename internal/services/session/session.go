package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/santaworkshop/internal/dependencies/clock"
	"github.com/mcoot/santaworkshop/internal/model"
)

// ReferenceFrame is the frame length that entity speeds are expressed in
const ReferenceFrame = 16 * time.Millisecond

// DefaultFrameInterval is how often the frame loop runs
const DefaultFrameInterval = ReferenceFrame

const tickInterval = time.Second

// Awarder receives the final score of a run
type Awarder interface {
	AddPoints(ctx context.Context, amount int) error
}

// Observer receives session events. It is called without the session lock.
type Observer func(event model.Event)

// Rules describe one timed game. Every method is called with the session
// lock held.
type Rules interface {
	Kind() model.GameKind
	Duration() time.Duration
	// Multiplier scales the final score into awarded points
	Multiplier() int
	// Reset clears live entities at the start of a run
	Reset(run *Run)
}

// Framer is implemented by rules that update entities every frame.
// delta is the elapsed time in reference frames.
type Framer interface {
	Frame(run *Run, delta float64)
}

// Starter is implemented by rules that schedule their own callbacks once a
// run begins.
type Starter interface {
	Started(run *Run)
}

// Config holds configuration for a session
type Config struct {
	FrameInterval time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{FrameInterval: DefaultFrameInterval}
}

// Session runs timed games: a one second countdown plus an optional frame
// loop, with exactly one award per run.
type Session struct {
	rules   Rules
	clock   clock.Clock
	awarder Awarder
	logger  *slog.Logger

	frameInterval time.Duration

	mu        sync.Mutex
	group     *Group
	status    model.SessionStatus
	epoch     uint64
	run       *Run
	awarded   int
	startedAt time.Time
	lastFrame time.Time

	events Broadcaster
}

// New creates an idle session for the given rules
func New(rules Rules, clk clock.Clock, awarder Awarder, cfg Config, logger *slog.Logger) *Session {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	return &Session{
		rules:         rules,
		clock:         clk,
		awarder:       awarder,
		logger:        logger.With(slog.String("component", "session"), slog.String("game", string(rules.Kind()))),
		frameInterval: cfg.FrameInterval,
		group:         NewGroup(clk),
		status:        model.SessionIdle,
		run:           &Run{Remaining: seconds(rules.Duration())},
	}
}

// Subscribe registers an observer for session events
func (s *Session) Subscribe(o Observer) {
	s.events.Subscribe(o)
}

// Start begins a new run, tearing down any run already in progress without
// awarding it.
func (s *Session) Start(ctx context.Context) model.SessionState {
	s.mu.Lock()

	s.group.StopAll()
	s.epoch++
	now := s.clock.Now()

	s.run = &Run{
		ID:        model.RunID(uuid.NewString()),
		Remaining: seconds(s.rules.Duration()),
		session:   s,
		epoch:     s.epoch,
	}
	s.status = model.SessionRunning
	s.awarded = 0
	s.startedAt = now
	s.lastFrame = now

	s.rules.Reset(s.run)

	epoch := s.epoch
	s.group.After(tickInterval, func() { s.tick(epoch) })
	if _, ok := s.rules.(Framer); ok {
		s.group.After(s.frameInterval, func() { s.frame(epoch) })
	}
	if starter, ok := s.rules.(Starter); ok {
		starter.Started(s.run)
	}
	s.run.takeChange()

	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Info("session started", slog.String("run_id", string(state.RunID)))
	s.emit(model.EventSessionStarted, state)
	return state
}

// Finish ends the running session and reports its score. Finishing a session
// that is not running does nothing and returns false.
func (s *Session) Finish(ctx context.Context) (model.SessionSummary, bool) {
	s.mu.Lock()
	if s.status != model.SessionRunning {
		s.mu.Unlock()
		return model.SessionSummary{}, false
	}
	summary := s.finishLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.report(ctx, summary)
	s.emit(model.EventSessionFinished, state)
	return summary, true
}

// Stop tears down the running session without awarding points
func (s *Session) Stop() bool {
	s.mu.Lock()
	if s.status != model.SessionRunning {
		s.mu.Unlock()
		return false
	}
	s.group.StopAll()
	s.epoch++
	s.status = model.SessionIdle
	state := s.stateLocked()
	s.mu.Unlock()

	s.logger.Info("session stopped",
		slog.String("run_id", string(state.RunID)),
		slog.Int("score", state.Score),
	)
	s.emit(model.EventSessionStopped, state)
	return true
}

// Interact applies fn to the running run. It returns false, without calling
// fn, when the session is not running.
func (s *Session) Interact(fn func(run *Run)) bool {
	s.mu.Lock()
	if s.status != model.SessionRunning {
		s.mu.Unlock()
		return false
	}
	fn(s.run)
	eventType := s.run.takeChange()
	state := s.stateLocked()
	s.mu.Unlock()

	if eventType != "" {
		s.emit(eventType, state)
	}
	return true
}

// Inspect calls fn with the current state while the session lock is held, so
// rules-owned entities can be read consistently.
func (s *Session) Inspect(fn func(state model.SessionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.stateLocked())
}

// Snapshot returns the current session state
func (s *Session) Snapshot() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Kind returns the game kind this session runs
func (s *Session) Kind() model.GameKind {
	return s.rules.Kind()
}

// PendingTimers returns the number of live timers owned by the session
func (s *Session) PendingTimers() int {
	return s.group.Pending()
}

func (s *Session) tick(epoch uint64) {
	s.mu.Lock()
	if !s.currentLocked(epoch) {
		s.mu.Unlock()
		return
	}

	s.run.Remaining--
	if s.run.Remaining > 0 {
		s.group.After(tickInterval, func() { s.tick(epoch) })
		state := s.stateLocked()
		s.mu.Unlock()
		s.emit(model.EventSessionTick, state)
		return
	}

	s.run.Remaining = 0
	summary := s.finishLocked()
	state := s.stateLocked()
	s.mu.Unlock()

	s.report(context.Background(), summary)
	s.emit(model.EventSessionFinished, state)
}

func (s *Session) frame(epoch uint64) {
	s.mu.Lock()
	if !s.currentLocked(epoch) {
		s.mu.Unlock()
		return
	}

	now := s.clock.Now()
	delta := float64(now.Sub(s.lastFrame)) / float64(ReferenceFrame)
	s.lastFrame = now

	s.rules.(Framer).Frame(s.run, delta)
	s.group.After(s.frameInterval, func() { s.frame(epoch) })

	eventType := s.run.takeChange()
	state := s.stateLocked()
	s.mu.Unlock()

	if eventType != "" {
		s.emit(eventType, state)
	}
}

// currentLocked reports whether a callback for epoch may still act
func (s *Session) currentLocked(epoch uint64) bool {
	return s.status == model.SessionRunning && s.epoch == epoch
}

// finishLocked transitions to finished and cancels the run's timers.
// Callers must have checked that the session is running.
func (s *Session) finishLocked() model.SessionSummary {
	s.group.StopAll()
	s.status = model.SessionFinished
	s.awarded = s.run.Score * s.rules.Multiplier()

	return model.SessionSummary{
		RunID:      s.run.ID,
		Kind:       s.rules.Kind(),
		FinalScore: s.run.Score,
		Awarded:    s.awarded,
		FinishedAt: s.clock.Now(),
	}
}

func (s *Session) report(ctx context.Context, summary model.SessionSummary) {
	s.logger.Info("session finished",
		slog.String("run_id", string(summary.RunID)),
		slog.Int("score", summary.FinalScore),
		slog.Int("awarded", summary.Awarded),
	)

	if summary.Awarded <= 0 {
		return
	}
	if err := s.awarder.AddPoints(ctx, summary.Awarded); err != nil {
		s.logger.Error("failed to award points",
			slog.String("run_id", string(summary.RunID)),
			slog.String("error", err.Error()),
		)
	}
}

func (s *Session) stateLocked() model.SessionState {
	return model.SessionState{
		RunID:     s.run.ID,
		Kind:      s.rules.Kind(),
		Status:    s.status,
		Score:     s.run.Score,
		Remaining: s.run.Remaining,
		Awarded:   s.awarded,
		StartedAt: s.startedAt,
	}
}

func (s *Session) emit(eventType model.EventType, state model.SessionState) {
	s.events.Emit(model.Event{
		Type:      eventType,
		Timestamp: s.clock.Now(),
		Kind:      state.Kind,
		RunID:     state.RunID,
		State:     state,
	})
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
