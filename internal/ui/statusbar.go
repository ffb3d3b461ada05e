package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusInfo is what the bottom status bar reports.
type StatusInfo struct {
	Calibration string
	Available   bool
	Aligned     bool
	Distance    int
	Threshold   int
	Policy      string
	Pulses      int
	BearingSet  bool
	Err         string
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s StatusInfo) string {
	var state string
	switch {
	case s.Err != "":
		state = StyleStatusError.Render("[" + s.Err + "]")
	case !s.Available:
		state = StyleStatusWarn.Render("[" + strings.ToUpper(s.Calibration) + "]")
	case s.Aligned:
		state = StyleStatusWarn.Render("[ALIGNED]")
	default:
		state = StyleStatusOK.Render("[" + strings.ToUpper(s.Calibration) + "]")
	}

	bearing := "default"
	if s.BearingSet {
		bearing = "received"
	}
	off := "--"
	if s.Available {
		off = fmt.Sprintf("%ddeg", s.Distance)
	}
	info := fmt.Sprintf(" Off: %s  Window: +/-%ddeg  Policy: %s  Pulses: %d  Bearing: %s",
		off, s.Threshold, s.Policy, s.Pulses, bearing)

	content := state + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
