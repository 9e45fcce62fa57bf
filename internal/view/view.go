// Package view projects the reading-item collection into what the
// presentation layer shows. It holds no state and caches nothing: every call
// recomputes from the collection it is handed.
package view

import (
	"fmt"
	"strings"

	"github.com/eoflazer/paperclip/internal/store"
)

// Filter selects which items are visible.
type Filter string

const (
	FilterAll      Filter = "ALL"
	FilterUnread   Filter = Filter(store.StatusUnread)
	FilterRead     Filter = Filter(store.StatusRead)
	FilterArchived Filter = Filter(store.StatusArchived)
)

// ParseFilter maps user input like "all" or "unread" to a Filter.
func ParseFilter(raw string) (Filter, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "ALL", "":
		return FilterAll, nil
	case string(store.StatusUnread):
		return FilterUnread, nil
	case string(store.StatusRead):
		return FilterRead, nil
	case string(store.StatusArchived):
		return FilterArchived, nil
	}
	return "", fmt.Errorf("unknown filter %q (valid: all, unread, read, archived)", raw)
}

// Visible returns the items the active filter admits, preserving collection
// order. ALL hides archived items; archived items show only under the
// ARCHIVED filter.
func Visible(items []store.Item, f Filter) []store.Item {
	var out []store.Item
	for _, it := range items {
		if f == FilterAll {
			if it.Status != store.StatusArchived {
				out = append(out, it)
			}
			continue
		}
		if it.Status == store.Status(f) {
			out = append(out, it)
		}
	}
	return out
}

// Counts holds independent per-status tallies. They always sum to the total
// collection size.
type Counts struct {
	Unread   int
	Read     int
	Archived int
}

// Tally scans the whole collection and counts each status.
func Tally(items []store.Item) Counts {
	var c Counts
	for _, it := range items {
		switch it.Status {
		case store.StatusUnread:
			c.Unread++
		case store.StatusRead:
			c.Read++
		case store.StatusArchived:
			c.Archived++
		}
	}
	return c
}
