package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(34)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusHold = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))
)

func headerStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Title).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(th.Muted)
}

// ProgressBar renders a bar filled to percent in [0, 1].
func ProgressBar(percent float64, width int, fill lipgloss.Color) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(strings.Repeat("░", width-filled))
}

// Legend renders "● label" entries side by side in their own colors.
func Legend(labels []string, colors []lipgloss.Color) string {
	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		parts = append(parts, lipgloss.NewStyle().Foreground(colors[i]).Render("● "+l))
	}
	return strings.Join(parts, "   ")
}
