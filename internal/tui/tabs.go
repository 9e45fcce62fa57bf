package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/eoflazer/paperclip/internal/view"
)

// tabOrder fixes the on-screen order of the filter tabs.
var tabOrder = []view.Filter{view.FilterAll, view.FilterUnread, view.FilterRead, view.FilterArchived}

// tabLabel returns the display name for a filter. The ALL tab reads
// "Active" since it hides archived items.
func tabLabel(f view.Filter) string {
	switch f {
	case view.FilterAll:
		return "Active"
	case view.FilterUnread:
		return "Unread"
	case view.FilterRead:
		return "Read"
	case view.FilterArchived:
		return "Archived"
	}
	return string(f)
}

func tabCount(f view.Filter, c view.Counts) (int, bool) {
	switch f {
	case view.FilterUnread:
		return c.Unread, true
	case view.FilterRead:
		return c.Read, true
	case view.FilterArchived:
		return c.Archived, true
	}
	return 0, false
}

func nextTab(f view.Filter) view.Filter {
	for i, t := range tabOrder {
		if t == f {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return view.FilterAll
}

// renderTabs draws the filter bar with per-status count badges.
func renderTabs(active view.Filter, counts view.Counts, width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for i, f := range tabOrder {
		style := tabInactiveStyle
		if f == active {
			style = tabActiveStyle
		}
		label := fmt.Sprintf("%d %s", i+1, tabLabel(f))
		if n, ok := tabCount(f, counts); ok {
			label = fmt.Sprintf("%s (%d)", label, n)
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
