package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(visibleCount int, tab string, width int, adding bool) string {
	left := fmt.Sprintf(" %d items · %s", visibleCount, tab)
	if adding {
		left += " (analyzing...)"
	}

	right := " a add  r read  e archive  d delete  ? help  q quit "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
