package ui

import (
	"math"
	"strings"

	"bearing-alert.klederson.com/internal/angle"
	"github.com/charmbracelet/lipgloss"
)

// Dial describes what the compass dial shows.
type Dial struct {
	Heading    int
	HasHeading bool
	Bearing    int
	Threshold  int
	Aligned    bool
}

const (
	cellEmpty = iota
	cellRing
	cellWindow
	cellMark
	cellAxis
	cellNeedle
	cellBearing
)

// RenderDial renders a north-up compass ring with the alert window highlighted,
// a bearing marker on the ring and a needle toward the current heading.
func RenderDial(width, height int, d Dial) string {
	if width < 9 || height < 5 {
		return ""
	}

	grid := make([][]byte, height)
	kind := make([][]int, height)
	for i := range grid {
		grid[i] = make([]byte, width)
		kind[i] = make([]int, width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}
	put := func(col, row int, ch byte, k int) {
		if col >= 0 && col < width && row >= 0 && row < height {
			grid[row][col] = ch
			kind[row][col] = k
		}
	}

	fcx := float64(width) / 2.0
	fcy := float64(height) / 2.0
	rx := fcx - 2.0 // horizontal radius in columns
	ry := fcy - 2.5 // vertical radius in rows, leaves room for N and S
	if rx < 3 {
		rx = 3
	}
	if ry < 2 {
		ry = 2
	}

	// Ring; cells inside the alert window are highlighted
	for deg := 0; deg < 360; deg += 4 {
		a := angle.Radians(deg)
		col := int(math.Round(fcx + rx*math.Sin(a)))
		row := int(math.Round(fcy - ry*math.Cos(a)))
		k := cellRing
		if angle.CircularDistance(deg, d.Bearing) <= d.Threshold {
			k = cellWindow
		}
		if col >= 0 && col < width && row >= 0 && row < height && kind[row][col] != cellWindow {
			put(col, row, ringChar(a), k)
		}
	}

	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	// Cardinal markers
	put(cx, cy-int(math.Round(ry))-1, 'N', cellMark)
	put(cx, cy+int(math.Round(ry))+1, 'S', cellMark)
	put(cx+int(math.Round(rx))+1, cy, 'E', cellMark)
	put(cx-int(math.Round(rx))-1, cy, 'W', cellMark)

	// Cross hairs (faint axes)
	for r := cy - int(ry) + 1; r < cy+int(ry); r++ {
		if r != cy && r >= 0 && r < height && grid[r][cx] == ' ' {
			put(cx, r, ':', cellAxis)
		}
	}
	for c := cx - int(rx) + 1; c < cx+int(rx); c++ {
		if c != cx && c >= 0 && c < width && grid[cy][c] == ' ' {
			put(c, cy, '.', cellAxis)
		}
	}

	// Bearing marker sits on the ring
	ba := angle.Radians(d.Bearing)
	put(int(math.Round(fcx+rx*math.Sin(ba))), int(math.Round(fcy-ry*math.Cos(ba))), 'B', cellBearing)

	put(cx, cy, '+', cellMark)

	if d.HasHeading {
		ha := angle.Radians(d.Heading)
		sinA := math.Sin(ha)
		cosA := math.Cos(ha)
		const needleFrac = 0.8

		steps := int(math.Max(rx, ry) * needleFrac)
		if steps < 2 {
			steps = 2
		}
		var tipCol, tipRow int
		for s := 1; s <= steps; s++ {
			t := float64(s) / float64(steps) * needleFrac
			col := int(math.Round(fcx + t*rx*sinA))
			row := int(math.Round(fcy - t*ry*cosA))
			put(col, row, shaftChar(ha), cellNeedle)
			tipCol, tipRow = col, row
		}
		put(tipCol, tipRow, arrowTip(ha), cellNeedle)
	}

	needleSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)
	if d.Aligned {
		needleSty = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	}
	ringSty := lipgloss.NewStyle().Foreground(ColorDimGreen)
	windowSty := lipgloss.NewStyle().Foreground(ColorWindow).Bold(true)
	axisSty := lipgloss.NewStyle().Foreground(lipgloss.Color("#003300"))
	markSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)
	bearingSty := lipgloss.NewStyle().Foreground(ColorBearing).Bold(true)

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ch := string(grid[row][col])
			switch kind[row][col] {
			case cellRing:
				sb.WriteString(ringSty.Render(ch))
			case cellWindow:
				sb.WriteString(windowSty.Render(ch))
			case cellMark:
				sb.WriteString(markSty.Render(ch))
			case cellAxis:
				sb.WriteString(axisSty.Render(ch))
			case cellNeedle:
				sb.WriteString(needleSty.Render(ch))
			case cellBearing:
				sb.WriteString(bearingSty.Render(ch))
			default:
				sb.WriteByte(' ')
			}
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// sector returns which of the 8 compass sectors a holds.
func sector(a float64) int {
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return int(math.Round(a/(math.Pi/4))) % 8
}

func ringChar(a float64) byte {
	switch sector(a) {
	case 0, 4:
		return '-'
	case 1, 5:
		return '\\'
	case 2, 6:
		return '|'
	default:
		return '/'
	}
}

// shaftChar returns the line character for a given angle direction.
func shaftChar(a float64) byte {
	switch sector(a) {
	case 0, 4: // N, S
		return '|'
	case 2, 6: // E, W
		return '-'
	case 1, 5: // NE, SW
		return '/'
	default: // SE, NW
		return '\\'
	}
}

// arrowTip returns the arrowhead character for a given angle.
func arrowTip(a float64) byte {
	switch sector(a) {
	case 0: // N
		return '^'
	case 1: // NE
		return '/'
	case 2: // E
		return '>'
	case 3: // SE
		return '\\'
	case 4: // S
		return 'v'
	case 5: // SW
		return '/'
	case 6: // W
		return '<'
	default: // NW
		return '\\'
	}
}
