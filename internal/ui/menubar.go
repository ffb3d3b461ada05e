package ui

import (
	"fmt"
	"strings"

	"bearing-alert.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, source string, demo bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"←/→", " turn"},
		{"C", "alibrate"},
		{"[/]", " bearing"},
		{"X", " drop"},
		{"Q", "uit"},
	}
	if demo {
		keys = keys[len(keys)-1:]
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	mode := StyleStatusOK.Render("LIVE")
	if demo {
		mode = StyleStatusWarn.Render("DEMO")
	}
	sourceInfo := StyleMenuLabel.Render(fmt.Sprintf("Companion: %s", source))

	left := StyleMenuKey.Render(title) + menu
	right := mode + "  " + sourceInfo + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return StyleMenuBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
