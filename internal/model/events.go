package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventSessionStarted  EventType = "session_started"
	EventSessionTick     EventType = "session_tick"
	EventScoreChanged    EventType = "score_changed"
	EventStateChanged    EventType = "state_changed" // Entities changed without a score change
	EventSessionFinished EventType = "session_finished"
	EventSessionStopped  EventType = "session_stopped"
)

// Event is emitted by a game session to its observers
type Event struct {
	Type      EventType
	Timestamp time.Time
	Kind      GameKind
	RunID     RunID
	State     SessionState
}
