package session

import (
	"sync"
	"time"

	"github.com/mcoot/santaworkshop/internal/dependencies/clock"
)

// Group tracks the timers scheduled for one run so they can be cancelled
// together. Fired timers remove themselves.
type Group struct {
	clock clock.Clock

	mu     sync.Mutex
	nextID uint64
	timers map[uint64]clock.Timer
}

// NewGroup creates an empty timer group
func NewGroup(clk clock.Clock) *Group {
	return &Group{
		clock:  clk,
		timers: make(map[uint64]clock.Timer),
	}
}

// After schedules f to run once d has elapsed
func (g *Group) After(d time.Duration, f func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nextID++
	id := g.nextID
	g.timers[id] = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		_, live := g.timers[id]
		delete(g.timers, id)
		g.mu.Unlock()

		if live {
			f()
		}
	})
}

// StopAll cancels every pending timer
func (g *Group) StopAll() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, t := range g.timers {
		t.Stop()
		delete(g.timers, id)
	}
}

// Pending returns the number of timers that have not fired or been stopped
func (g *Group) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.timers)
}
