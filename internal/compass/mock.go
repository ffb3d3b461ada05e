package compass

import (
	"context"
	"math"
	"math/rand"
	"time"

	"bearing-alert.klederson.com/internal/angle"
	tea "github.com/charmbracelet/bubbletea"
)

// SampleMsg is sent via Sender.Send when the feed delivers a sample.
type SampleMsg struct {
	Sample Sample
}

// Sender delivers messages to the host event loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Calibration phases of the simulated sensor, in seconds since start.
const (
	mockInvalidFor     = 1.0
	mockCalibratingFor = 4.0
)

// MockSensor simulates a wrist compass for demo mode: it starts invalid,
// calibrates, then reports a heading that drifts back and forth around the
// circle.
type MockSensor struct {
	program Sender
	filter  *Filter
	period  time.Duration
	cancel  context.CancelFunc

	phase     float64
	rate      float64 // degrees per second
	unknownP  float64 // chance per tick of a bogus status code
	startedAt time.Time
}

// NewMockSensor creates a simulated sensor whose samples pass through filter.
func NewMockSensor(filter *Filter) *MockSensor {
	return &MockSensor{
		filter:   filter,
		period:   100 * time.Millisecond,
		phase:    rand.Float64() * 2 * math.Pi,
		rate:     15 + rand.Float64()*20,
		unknownP: 0.002,
	}
}

// Start begins the simulated feed.
func (s *MockSensor) Start(p Sender) error {
	s.program = p
	s.startedAt = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx)
	return nil
}

func (s *MockSensor) loop(ctx context.Context) {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sample := s.sampleAt(now.Sub(s.startedAt).Seconds())
			if rand.Float64() < s.unknownP {
				sample.Status = Status(3 + rand.Intn(5))
			}
			if s.filter != nil && !s.filter.Pass(sample) {
				continue
			}
			if s.program != nil {
				s.program.Send(SampleMsg{Sample: sample})
			}
		}
	}
}

// sampleAt returns the simulated reading t seconds after start.
func (s *MockSensor) sampleAt(t float64) Sample {
	switch {
	case t < mockInvalidFor:
		return Sample{Status: StatusDataInvalid}
	case t < mockCalibratingFor:
		return Sample{Status: StatusCalibrating, HeadingRaw: s.headingAt(t)}
	default:
		return Sample{Status: StatusCalibrated, HeadingRaw: s.headingAt(t)}
	}
}

// headingAt sweeps steadily and sways, so the wearer crosses any bearing
// from both directions.
func (s *MockSensor) headingAt(t float64) angle.Raw {
	deg := s.rate*t + 60*math.Sin(t*0.4+s.phase)
	return angle.FromDegrees(int(math.Round(deg)))
}

// Stop halts the simulated feed.
func (s *MockSensor) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
