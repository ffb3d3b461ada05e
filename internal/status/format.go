// Package status renders the two watch display fields: the heading status and
// the received bearing.
package status

import (
	"fmt"
	"unicode/utf8"

	"bearing-alert.klederson.com/internal/bearing"
	"bearing-alert.klederson.com/internal/compass"
)

// Display field capacities, in code points.
const (
	HeadingTextMax = 64
	BearingTextMax = 32
)

// Fixed notices.
const (
	InitialHeading = "Calibrating..."
	InvalidHeading = "Compass data invalid"
	DroppedHeading = "Message dropped"
)

// FormatHeading renders the heading field for a classified sample.
func FormatHeading(st compass.State) string {
	switch s := st.(type) {
	case compass.Invalid:
		return InvalidHeading
	case compass.HeadingAvailable:
		whole, frac := PiCount(s.Degrees)
		return Truncate(fmt.Sprintf("%d°\n%d.%02dpi", s.Degrees, whole, frac), HeadingTextMax)
	case compass.UnknownStatus:
		return Truncate(fmt.Sprintf("Unknown CompassStatus: %d", s.Code), HeadingTextMax)
	default:
		return InvalidHeading
	}
}

// PiCount expresses deg as a multiple of pi with two truncated decimals.
func PiCount(deg int) (whole, hundredths int) {
	return deg * 2 / 360, (deg * 200 / 360) % 100
}

// FormatBearing renders the bearing field. The default target renders as "0°".
func FormatBearing(t bearing.Target) string {
	return Truncate(fmt.Sprintf("%d°", t.Bearing), BearingTextMax)
}

// Truncate bounds s to at most n code points.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
