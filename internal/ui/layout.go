package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the dial panel and watch face horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, dialPanel, face, statusBar string) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, dialPanel, face)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
