// Package ui provides consistent styling for the cursorfence CLI output
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary = lipgloss.Color("39")  // Bright blue
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray
)

var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 2)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			MarginLeft(2)
)

// Banner renders the startup banner.
func Banner(version string) string {
	lines := []string{
		HeaderStyle.Render("cursorfence " + version),
		TextStyle.Render("Confines the cursor to fullscreen windows"),
		SubtleStyle.Render("Press Ctrl+C to exit"),
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

// MonitorLine formats one monitor for the startup listing.
func MonitorLine(name string, width, height, x, y int32, primary bool) string {
	line := fmt.Sprintf("%s: %dx%d at (%d,%d)", name, width, height, x, y)
	if primary {
		line += " [PRIMARY]"
	}
	return ListItemStyle.Render(line)
}
