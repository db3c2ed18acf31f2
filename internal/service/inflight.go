package service

import (
	"sync"

	"tapcard/internal/errors"
)

// InFlight allows one pending submission per key. A second Acquire for the
// same key fails until the first is released.
type InFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewInFlight creates an empty guard.
func NewInFlight() *InFlight {
	return &InFlight{keys: make(map[string]struct{})}
}

// Acquire claims key or returns ErrRequestInFlight.
func (g *InFlight) Acquire(key string) (release func(), err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.keys[key]; busy {
		return nil, errors.ErrRequestInFlight
	}
	g.keys[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.keys, key)
			g.mu.Unlock()
		})
	}, nil
}
