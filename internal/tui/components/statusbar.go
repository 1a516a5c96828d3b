package components

import (
	"strings"

	"mortsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// info on the right, and a warning in place of the info when set.
func RenderStatusBar(width int, info, warning string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warn := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Surface).Bold(true)

	left := base.Render(" [e]dit  [?]help  [q]uit")
	right := base.Render(info + " ")
	if warning != "" {
		right = warn.Render(warning + " ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + base.Render(strings.Repeat(" ", padding)) + right

	return lipgloss.NewStyle().Background(t.Surface).Width(width).MaxWidth(width).Render(bar)
}

