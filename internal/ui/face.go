package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Face is the simulated watch face: the two display fields plus context.
type Face struct {
	HeadingText string
	BearingText string
	Pulsing     bool
	Distance    int
	Available   bool
	Threshold   int
	History     []int // circular distance to the bearing, oldest first
	Streak      int   // latest consecutive samples inside the window
}

// RenderFace renders the watch face panel.
func RenderFace(f Face, width, height int) string {
	innerW := width - 4
	if innerW < 12 {
		innerW = 12
	}

	title := StylePanelTitle.Render("WATCH")
	if f.Pulsing {
		title += StyleStatusWarn.Render(" ~BZZT~")
	}
	sep := StyleLabel.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep, ""}

	lines = append(lines, StyleLabel.Render("  Heading"))
	for _, l := range strings.Split(f.HeadingText, "\n") {
		lines = append(lines, center(StyleFaceText.Render(l), innerW))
	}
	lines = append(lines, "")

	lines = append(lines, StyleLabel.Render("  Bearing"))
	lines = append(lines, center(StyleFaceBearing.Render(f.BearingText), innerW))
	lines = append(lines, "")

	barW := innerW - 12
	if barW < 6 {
		barW = 6
	}
	lines = append(lines, StyleLabel.Render("  Align ")+renderAlignBar(f.Distance, f.Threshold, f.Available, barW))
	lines = append(lines, "")

	if len(f.History) > 0 {
		sparkW := innerW - 4
		if sparkW < 6 {
			sparkW = 6
		}
		lines = append(lines, StyleLabel.Render("  Off-bearing history:"))
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(renderSparkline(f.History, sparkW)))
		if f.Streak > 0 {
			lines = append(lines, StyleLabel.Render(fmt.Sprintf("  In window for %d samples", f.Streak)))
		}
	}

	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	style := StylePanelActive
	if f.Pulsing {
		style = StylePanelPulse
	}
	return style.Width(width - 2).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func center(s string, width int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// renderAlignBar fills more the closer the heading is to the bearing; the
// part inside the alert window is drawn in the window color.
func renderAlignBar(distance, threshold int, available bool, width int) string {
	if !available {
		return StyleHelp.Render("[" + strings.Repeat("-", width) + "]")
	}
	ratio := 1 - float64(distance)/180.0
	filled := int(ratio * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	color := ColorMidGreen
	if distance <= threshold {
		color = ColorWindow
	}
	filledPart := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("|", filled))
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(strings.Repeat("-", width-filled))
	label := StyleFaceText.Render(fmt.Sprintf(" %3d", distance))
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]") + label
}

func renderSparkline(values []int, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	// Fixed scale: 0 (on bearing) to 180 (opposite)
	const rng = 180

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for i := start; i < len(values); i++ {
		idx := values[i] * (len(chars) - 1) / rng
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		sb.WriteByte(chars[idx])
	}

	return sb.String()
}
