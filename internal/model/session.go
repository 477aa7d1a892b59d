package model

import "time"

// GameKind identifies a mini-game
type GameKind string

const (
	GameCatcher  GameKind = "catcher"  // Falling gift catcher
	GameSnowball GameKind = "snowball" // Whack-a-mole snowball fight
	GameTrivia   GameKind = "trivia"
	GameMemory   GameKind = "memory"
)

// ParseGameKind converts a string into a known GameKind
func ParseGameKind(s string) (GameKind, error) {
	switch k := GameKind(s); k {
	case GameCatcher, GameSnowball, GameTrivia, GameMemory:
		return k, nil
	}
	return "", ErrUnknownGame
}

// RunID uniquely identifies one run of a session
type RunID string

// SessionStatus represents the current phase of a game session
type SessionStatus string

const (
	SessionIdle     SessionStatus = "idle"     // Never started
	SessionRunning  SessionStatus = "running"  // Clock and entities live
	SessionFinished SessionStatus = "finished" // Final score reported
)

// SessionState is a point-in-time view of a timed session
type SessionState struct {
	RunID     RunID
	Kind      GameKind
	Status    SessionStatus
	Score     int
	Remaining int // Whole seconds left on the countdown
	Awarded   int // Points reported to the economy for the last finished run
	StartedAt time.Time
}

// SessionSummary is a lightweight record of a completed run
type SessionSummary struct {
	RunID      RunID
	Kind       GameKind
	FinalScore int
	Awarded    int
	FinishedAt time.Time
}
