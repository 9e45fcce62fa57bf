package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/eoflazer/paperclip/internal/store"
)

func statusLabel(s store.Status) string {
	switch s {
	case store.StatusRead:
		return statusReadStyle.Render("READ")
	case store.StatusArchived:
		return statusArchivedStyle.Render("ARCHIVED")
	default:
		return statusUnreadStyle.Render("UNREAD")
	}
}

func renderDetail(it *store.Item, width, height int) string {
	if it == nil {
		return centerText("Select an item", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := detailTitleStyle.Width(contentWidth).Render(it.Title)
	meta := detailMetaStyle.Render(fmt.Sprintf("%s · %s · %s",
		it.Author, it.Site(), it.AddedAt.Format("Jan 2, 2006")))

	summary := it.Summary
	if summary == "" {
		summary = "No summary available."
	}

	body := detailBodyStyle.Width(contentWidth).Render(wrapText(summary, contentWidth))
	link := detailLinkStyle.Width(contentWidth).Render("Open: " + it.URL)

	content := lipgloss.JoinVertical(lipgloss.Left,
		statusLabel(it.Status), "", title, meta, "", body, "", link)

	// Pad or clip to fill height
	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
