package session

import (
	"time"

	"github.com/mcoot/santaworkshop/internal/model"
)

// Run is the mutable state of one session run. Rules only touch it while the
// session lock is held.
type Run struct {
	ID        model.RunID
	Score     int
	Remaining int

	session      *Session
	epoch        uint64
	scoreChanged bool
	stateChanged bool
}

// AddScore applies a score delta. The running score never drops below zero.
func (r *Run) AddScore(delta int) {
	r.Score = max(0, r.Score+delta)
	r.scoreChanged = true
}

// Touch marks visible state as changed without a score change
func (r *Run) Touch() {
	r.stateChanged = true
}

// After schedules f for this run. f runs with the session lock held and is
// skipped if the run has ended or been replaced by then.
func (r *Run) After(d time.Duration, f func(run *Run)) {
	s := r.session
	s.group.After(d, func() {
		s.mu.Lock()
		if !s.currentLocked(r.epoch) {
			s.mu.Unlock()
			return
		}
		f(r)
		eventType := r.takeChange()
		state := s.stateLocked()
		s.mu.Unlock()

		if eventType != "" {
			s.emit(eventType, state)
		}
	})
}

// takeChange returns the event owed for changes since the last call, or ""
func (r *Run) takeChange() model.EventType {
	var eventType model.EventType
	switch {
	case r.scoreChanged:
		eventType = model.EventScoreChanged
	case r.stateChanged:
		eventType = model.EventStateChanged
	}
	r.scoreChanged = false
	r.stateChanged = false
	return eventType
}
