package store

import "testing"

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		err   bool
	}{
		{"unread", StatusUnread, false},
		{"READ", StatusRead, false},
		{" archived ", StatusArchived, false},
		{"Read", StatusRead, false},
		{"trash", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestItemSite(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want string
	}{
		{"extracted name wins", Item{SiteName: "News", URL: "https://a.com/1"}, "News"},
		{"host fallback", Item{URL: "https://blog.a.com/post"}, "blog.a.com"},
		{"raw url when hostless", Item{URL: "not a url"}, "not a url"},
	}

	for _, tt := range tests {
		if got := tt.item.Site(); got != tt.want {
			t.Errorf("%s: Site() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusUnread, StatusRead, StatusArchived} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "unread", "DELETED"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}
