package ui

import "github.com/charmbracelet/lipgloss"

// Matrix color palette
var (
	ColorMatrixGreen  = lipgloss.Color("#00FF41")
	ColorGreen        = lipgloss.Color("#00CC33")
	ColorMidGreen     = lipgloss.Color("#008F11")
	ColorDimGreen     = lipgloss.Color("#004A0A")
	ColorBlack        = lipgloss.Color("#000000")
	ColorBearing      = lipgloss.Color("#00FFAA")
	ColorWindow       = lipgloss.Color("#FFCC00")
	ColorBorderBright = lipgloss.Color("#00FF41")
	ColorBorderNorm   = lipgloss.Color("#00AA22")
	ColorError        = lipgloss.Color("#FF3300")
	ColorWarning      = lipgloss.Color("#FFAA00")
)

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusOK = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleStatusWarn = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StyleStatusError = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderNorm)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderBright)

	StylePanelPulse = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(ColorWarning)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true).
			Padding(0, 1)

	StyleFaceText = lipgloss.NewStyle().
			Foreground(ColorMatrixGreen).
			Bold(true)

	StyleFaceBearing = lipgloss.NewStyle().
				Foreground(ColorBearing).
				Bold(true)

	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleLegend = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleLegendWindow = lipgloss.NewStyle().
				Foreground(ColorWindow)

	StyleLegendBearing = lipgloss.NewStyle().
				Foreground(ColorBearing)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)
)
