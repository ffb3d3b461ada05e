// Package bearing holds the target bearing received from the companion and
// the alert threshold around it.
package bearing

import (
	"sync"

	"bearing-alert.klederson.com/internal/angle"
	"bearing-alert.klederson.com/internal/message"
)

// DefaultThreshold is the alert half-width used when none is configured.
const DefaultThreshold = 10

// Target is the direction the wearer wants to be alerted toward.
type Target struct {
	Bearing   int // degrees, [0, 360)
	Threshold int // degrees, half-width of the alert window
}

// Store is the single owned BearingTarget of a running engine. It is safe for
// concurrent use.
type Store struct {
	mu     sync.RWMutex
	target Target
	set    bool
}

// NewStore creates a store at bearing 0 with the given threshold.
func NewStore(threshold int) *Store {
	return &Store{
		target: Target{Threshold: threshold},
	}
}

// Update applies a decoded bearing message. Bearings of 360 or more wrap.
func (s *Store) Update(msg message.Bearing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.target.Bearing = angle.Normalize(int(msg.Degrees))
	s.set = true
}

// Current returns the present target.
func (s *Store) Current() Target {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.target
}

// IsSet reports whether any bearing update has been received.
func (s *Store) IsSet() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.set
}
