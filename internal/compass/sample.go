// Package compass classifies compass samples by calibration progress and
// provides the host-side heading filter and a simulated sensor feed.
package compass

import (
	"fmt"

	"bearing-alert.klederson.com/internal/angle"
)

// Status is the calibration status code reported with every sample.
// Codes outside the named constants are passed through as unknown.
type Status int

const (
	StatusDataInvalid Status = iota
	StatusCalibrating
	StatusCalibrated
)

func (s Status) String() string {
	switch s {
	case StatusDataInvalid:
		return "invalid"
	case StatusCalibrating:
		return "calibrating"
	case StatusCalibrated:
		return "calibrated"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Sample is a single reading delivered by the sensor feed.
// HeadingRaw is only meaningful while calibrating or calibrated.
type Sample struct {
	Status     Status
	HeadingRaw angle.Raw
}

// State is the classification of a sample. It is one of Invalid,
// HeadingAvailable or UnknownStatus.
type State interface {
	isState()
}

// Invalid means the sensor has no usable heading.
type Invalid struct{}

// HeadingAvailable carries a usable heading in degrees.
type HeadingAvailable struct {
	Degrees int
}

// UnknownStatus carries a status code the engine does not recognize.
type UnknownStatus struct {
	Code int
}

func (Invalid) isState()          {}
func (HeadingAvailable) isState() {}
func (UnknownStatus) isState()    {}

// Classify maps a sample to its State. Calibrating already yields a usable
// heading, so it is treated the same as calibrated.
func Classify(s Sample) State {
	switch s.Status {
	case StatusDataInvalid:
		return Invalid{}
	case StatusCalibrating, StatusCalibrated:
		return HeadingAvailable{Degrees: angle.ToDegrees(s.HeadingRaw)}
	default:
		return UnknownStatus{Code: int(s.Status)}
	}
}

// Heading returns the heading carried by st, if any.
func Heading(st State) (int, bool) {
	h, ok := st.(HeadingAvailable)
	return h.Degrees, ok
}
