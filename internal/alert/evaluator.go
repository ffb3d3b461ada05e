// Package alert decides when the wearer's heading is aligned with the target
// bearing and requests a haptic pulse.
package alert

import (
	"time"

	"bearing-alert.klederson.com/internal/angle"
	"bearing-alert.klederson.com/internal/bearing"
	"github.com/benbjohnson/clock"
)

// Haptic accepts fire-and-forget short pulse requests.
type Haptic interface {
	Pulse()
}

// ShouldAlert reports whether heading lies within target.Threshold degrees of
// target.Bearing along the shorter arc of the circle.
func ShouldAlert(heading int, target bearing.Target) bool {
	return angle.CircularDistance(heading, target.Bearing) <= target.Threshold
}

// Evaluator tests headings against the target and fires the haptic according
// to its Policy. It is not safe for concurrent use; the host delivers samples
// serially.
type Evaluator struct {
	haptic   Haptic
	policy   Policy
	cooldown time.Duration
	clock    clock.Clock

	inside    bool
	lastPulse time.Time
	pulses    int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithPolicy sets the firing policy. The default is PolicyEvery.
func WithPolicy(p Policy) Option {
	return func(e *Evaluator) { e.policy = p }
}

// WithCooldown sets the minimum gap between pulses under PolicyCooldown.
func WithCooldown(d time.Duration) Option {
	return func(e *Evaluator) { e.cooldown = d }
}

// WithClock replaces the wall clock.
func WithClock(c clock.Clock) Option {
	return func(e *Evaluator) { e.clock = c }
}

// NewEvaluator creates an evaluator that pulses h.
func NewEvaluator(h Haptic, opts ...Option) *Evaluator {
	e := &Evaluator{
		haptic:   h,
		policy:   PolicyEvery,
		cooldown: DefaultCooldown,
		clock:    clock.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate tests heading against target and pulses at most once. It returns
// whether a pulse was requested.
func (e *Evaluator) Evaluate(heading int, target bearing.Target) bool {
	in := ShouldAlert(heading, target)
	wasInside := e.inside
	e.inside = in
	if !in {
		return false
	}

	switch e.policy {
	case PolicyEntry:
		if wasInside {
			return false
		}
	case PolicyCooldown:
		now := e.clock.Now()
		if !e.lastPulse.IsZero() && now.Sub(e.lastPulse) < e.cooldown {
			return false
		}
		e.lastPulse = now
	}

	e.pulses++
	if e.haptic != nil {
		e.haptic.Pulse()
	}
	return true
}

// Inside reports whether the last evaluated heading was inside the window.
func (e *Evaluator) Inside() bool {
	return e.inside
}

// Pulses returns the number of pulses requested so far.
func (e *Evaluator) Pulses() int {
	return e.pulses
}

// Policy returns the firing policy in use.
func (e *Evaluator) Policy() Policy {
	return e.policy
}
