package compass

import (
	"sync"

	"bearing-alert.klederson.com/internal/angle"
)

// DefaultFilter is the minimum heading change before a new sample is delivered.
const DefaultFilter = angle.TrigMaxAngle / 36

// Filter drops samples whose heading moved less than MinDelta since the last
// delivered sample. A change of status is always delivered.
type Filter struct {
	mu       sync.Mutex
	minDelta angle.Raw
	last     Sample
	primed   bool
}

// NewFilter creates a filter. A zero minDelta delivers every sample.
func NewFilter(minDelta angle.Raw) *Filter {
	return &Filter{minDelta: minDelta}
}

// Pass reports whether s should be delivered and records it if so.
func (f *Filter) Pass(s Sample) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.primed && s.Status == f.last.Status &&
		angle.RawDelta(s.HeadingRaw, f.last.HeadingRaw) < f.minDelta {
		return false
	}
	f.last = s
	f.primed = true
	return true
}
