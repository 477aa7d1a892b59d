package session

import (
	"sync"

	"github.com/mcoot/santaworkshop/internal/model"
)

// Broadcaster fans events out to observers
type Broadcaster struct {
	mu        sync.Mutex
	observers []Observer
}

// Subscribe registers an observer
func (b *Broadcaster) Subscribe(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, o)
}

// Emit delivers an event to every observer. Must not be called with a lock
// that observers could need.
func (b *Broadcaster) Emit(event model.Event) {
	b.mu.Lock()
	observers := make([]Observer, len(b.observers))
	copy(observers, b.observers)
	b.mu.Unlock()

	for _, o := range observers {
		o(event)
	}
}
