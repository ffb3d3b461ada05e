package app

import (
	"sync"
	"time"

	"bearing-alert.klederson.com/internal/engine"
)

// face holds what the simulated watch currently shows. It is the engine's
// primary display sink.
type face struct {
	mu      sync.Mutex
	heading string
	bearing string
}

func (f *face) SetHeadingText(s string) {
	f.mu.Lock()
	f.heading = s
	f.mu.Unlock()
}

func (f *face) SetBearingText(s string) {
	f.mu.Lock()
	f.bearing = s
	f.mu.Unlock()
}

func (f *face) texts() (heading, bearing string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.heading, f.bearing
}

// displays fans every update out to several sinks.
type displays []engine.Display

func (d displays) SetHeadingText(s string) {
	for _, sink := range d {
		sink.SetHeadingText(s)
	}
}

func (d displays) SetBearingText(s string) {
	for _, sink := range d {
		sink.SetBearingText(s)
	}
}

// vibe stands in for the haptic motor: a pulse flashes the watch face.
type vibe struct {
	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

func (v *vibe) Pulse() {
	v.mu.Lock()
	v.last = v.now()
	v.mu.Unlock()
}

// active reports whether a pulse happened within d.
func (v *vibe) active(d time.Duration) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return !v.last.IsZero() && v.now().Sub(v.last) < d
}
