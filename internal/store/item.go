package store

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Status is the triage state of a reading item. Any status may transition to
// any other.
type Status string

const (
	StatusUnread   Status = "UNREAD"
	StatusRead     Status = "READ"
	StatusArchived Status = "ARCHIVED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnread, StatusRead, StatusArchived:
		return true
	}
	return false
}

// ParseStatus maps user input like "unread" to a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q (valid: unread, read, archived)", raw)
	}
	return s, nil
}

// Metadata is the descriptive part of an item, supplied by the extractor (or
// its fallback) at creation time.
type Metadata struct {
	Title    string
	Author   string
	SiteName string
	Summary  string
}

// Item is one saved URL. Only Status ever changes after creation.
//
// The JSON field names match the readflow-era blob so a legacy file loads
// without translation.
type Item struct {
	ID       string    `json:"id"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	SiteName string    `json:"siteName,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	AddedAt  time.Time `json:"addedAt"`
	Status   Status    `json:"status"`
}

// Site prefers the extracted site name and falls back to the URL host when
// the extractor left it empty.
func (it Item) Site() string {
	if it.SiteName != "" {
		return it.SiteName
	}
	if u, err := url.Parse(it.URL); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return it.URL
}
