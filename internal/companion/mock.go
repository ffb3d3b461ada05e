package companion

import (
	"context"
	"math/rand"
	"time"

	"bearing-alert.klederson.com/internal/message"
)

// SourceDemo names frames produced by the simulated companion.
const SourceDemo = "demo"

// MockCompanion plays a phone app for demo mode: it sends a new bearing
// periodically and, rarely, a frame without the bearing key or a drop.
type MockCompanion struct {
	program Sender
	every   time.Duration
	cancel  context.CancelFunc
	rng     *rand.Rand
}

// NewMockCompanion creates a simulated companion that sends every interval.
func NewMockCompanion(every time.Duration) *MockCompanion {
	return &MockCompanion{
		every: every,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins sending. The first bearing goes out immediately.
func (c *MockCompanion) Start(p Sender) error {
	c.program = p

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	go c.loop(ctx)
	return nil
}

func (c *MockCompanion) loop(ctx context.Context) {
	ticker := time.NewTicker(c.every)
	defer ticker.Stop()

	c.emit()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.emit()
		}
	}
}

func (c *MockCompanion) emit() {
	if c.program == nil {
		return
	}
	switch p := c.rng.Float64(); {
	case p < 0.05:
		c.program.Send(DropMsg{Source: SourceDemo, Reason: message.DropSendTimeout})
	case p < 0.10:
		// companion chatter the watch does not understand
		frame, err := message.Dictionary{message.Uint16Tuple(2, uint16(c.rng.Intn(100)))}.MarshalBinary()
		if err == nil {
			c.program.Send(FrameMsg{Source: SourceDemo, Frame: frame})
		}
	default:
		frame, err := c.next()
		if err == nil {
			c.program.Send(FrameMsg{Source: SourceDemo, Frame: frame})
		}
	}
}

func (c *MockCompanion) next() ([]byte, error) {
	return message.EncodeBearing(uint16(c.rng.Intn(360)))
}

// Stop halts the simulated companion.
func (c *MockCompanion) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}
