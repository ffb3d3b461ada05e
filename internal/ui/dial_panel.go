package ui

import "strings"

// RenderDialPanel wraps dial content and its legend with a styled border.
func RenderDialPanel(width, height int, dial, legend string) string {
	content := dial + "\n" + legend
	return StylePanelBorder.Width(width - 2).Height(height - 2).Render(content)
}

// RenderLegend renders the one-line key under the dial.
func RenderLegend(width int) string {
	parts := []string{
		StyleLegendBearing.Render("B") + StyleLegend.Render(" bearing"),
		StyleLegendWindow.Render("-") + StyleLegend.Render(" alert window"),
		StyleLegend.Render("^ heading"),
	}
	line := strings.Join(parts, StyleLegend.Render("  "))
	return StyleLegend.Width(width).Render(line)
}
