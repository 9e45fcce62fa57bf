package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "items.json"), filepath.Join(dir, "legacy.json"), nil)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	return s
}

func sampleMetadata() Metadata {
	return Metadata{
		Title:    "A Post",
		Author:   "J. Doe",
		SiteName: "News",
		Summary:  "Something happened.",
	}
}

func TestAddPrependsUnread(t *testing.T) {
	s := testStore(t)

	first, err := s.Add("https://a.com/1", sampleMetadata())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := s.Add("https://a.com/2", sampleMetadata())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID {
		t.Errorf("expected newest item at head, got %s", items[0].ID)
	}
	if items[1].ID != first.ID {
		t.Errorf("expected oldest item last, got %s", items[1].ID)
	}
	for _, it := range items {
		if it.Status != StatusUnread {
			t.Errorf("expected new item status UNREAD, got %s", it.Status)
		}
	}
}

func TestAddPopulatesAllFields(t *testing.T) {
	s := testStore(t)

	it, err := s.Add("https://a.com/x", sampleMetadata())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if it.ID == "" {
		t.Error("expected non-empty id")
	}
	if it.URL != "https://a.com/x" {
		t.Errorf("unexpected url %q", it.URL)
	}
	if it.Title != "A Post" || it.Author != "J. Doe" || it.SiteName != "News" || it.Summary != "Something happened." {
		t.Errorf("metadata not carried over: %+v", it)
	}
	if it.AddedAt.IsZero() {
		t.Error("expected addedAt to be set")
	}
}

func TestAddUniqueIDs(t *testing.T) {
	s := testStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		it, err := s.Add("https://a.com/n", sampleMetadata())
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if seen[it.ID] {
			t.Fatalf("duplicate id %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestUpdateStatusOnlyChangesStatus(t *testing.T) {
	s := testStore(t)
	it, _ := s.Add("https://a.com/1", sampleMetadata())
	s.Add("https://a.com/2", sampleMetadata())

	if err := s.UpdateStatus(it.ID, StatusRead); err != nil {
		t.Fatalf("update: %v", err)
	}

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Order unchanged: updated item still at tail
	got := items[1]
	if got.ID != it.ID {
		t.Fatalf("collection reordered: expected %s at tail, got %s", it.ID, got.ID)
	}
	if got.Status != StatusRead {
		t.Errorf("expected status READ, got %s", got.Status)
	}
	if got.Title != it.Title || got.URL != it.URL || !got.AddedAt.Equal(it.AddedAt) {
		t.Errorf("fields other than status changed: %+v vs %+v", got, it)
	}
}

func TestUpdateStatusSequence(t *testing.T) {
	s := testStore(t)
	it, _ := s.Add("https://a.com/1", sampleMetadata())

	for _, st := range []Status{StatusRead, StatusArchived, StatusUnread, StatusArchived, StatusRead} {
		if err := s.UpdateStatus(it.ID, st); err != nil {
			t.Fatalf("update to %s: %v", st, err)
		}
		if got := s.Items()[0].Status; got != st {
			t.Errorf("expected status %s, got %s", st, got)
		}
	}
}

func TestUpdateStatusUnknownIDNoOp(t *testing.T) {
	s := testStore(t)
	s.Add("https://a.com/1", sampleMetadata())

	if err := s.UpdateStatus("nope", StatusRead); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if got := s.Items()[0].Status; got != StatusUnread {
		t.Errorf("unrelated item changed: %s", got)
	}
}

func TestUpdateStatusRejectsInvalid(t *testing.T) {
	s := testStore(t)
	it, _ := s.Add("https://a.com/1", sampleMetadata())

	if err := s.UpdateStatus(it.ID, Status("BOGUS")); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestRemove(t *testing.T) {
	s := testStore(t)
	it, _ := s.Add("https://a.com/1", sampleMetadata())
	s.Add("https://a.com/2", sampleMetadata())

	if err := s.Remove(it.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	for _, got := range s.Items() {
		if got.ID == it.ID {
			t.Errorf("removed item still present")
		}
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestRemoveUnknownIDNoOp(t *testing.T) {
	s := testStore(t)
	s.Add("https://a.com/1", sampleMetadata())

	if err := s.Remove("nope"); err != nil {
		t.Fatalf("expected no-op, got error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	legacy := filepath.Join(dir, "legacy.json")

	s, err := Open(path, legacy, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Add("https://a.com/1", sampleMetadata())
	s.Add("https://a.com/2", Metadata{Title: "Second", Author: "Unknown"})
	it, _ := s.Add("https://a.com/3", sampleMetadata())
	s.UpdateStatus(it.ID, StatusArchived)
	before := s.Items()

	reloaded, err := Open(path, legacy, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	after := reloaded.Items()

	if len(after) != len(before) {
		t.Fatalf("expected %d items after reload, got %d", len(before), len(after))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Errorf("item %d: id %s != %s", i, after[i].ID, before[i].ID)
		}
		if after[i].Status != before[i].Status {
			t.Errorf("item %d: status %s != %s", i, after[i].Status, before[i].Status)
		}
		if !after[i].AddedAt.Equal(before[i].AddedAt) {
			t.Errorf("item %d: addedAt %v != %v", i, after[i].AddedAt, before[i].AddedAt)
		}
		if after[i].URL != before[i].URL || after[i].Title != before[i].Title ||
			after[i].Author != before[i].Author || after[i].SiteName != before[i].SiteName ||
			after[i].Summary != before[i].Summary {
			t.Errorf("item %d: fields differ after reload", i)
		}
	}
}

func TestLegacyMigration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paperclip_items.json")
	legacy := filepath.Join(dir, "readflow_items.json")

	items := []Item{{
		ID:      "legacy-1",
		URL:     "https://old.example.com",
		Title:   "Old Item",
		Author:  "Unknown",
		AddedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:  StatusRead,
	}}
	data, _ := json.Marshal(items)
	if err := os.WriteFile(legacy, data, 0o644); err != nil {
		t.Fatalf("writing legacy blob: %v", err)
	}

	s, err := Open(path, legacy, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	got := s.Items()
	if len(got) != 1 || got[0].ID != "legacy-1" || got[0].Status != StatusRead {
		t.Fatalf("legacy items not migrated: %+v", got)
	}

	// Migration writes the current blob and leaves the legacy file alone.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected migrated blob at %s: %v", path, err)
	}
	legacyAfter, err := os.ReadFile(legacy)
	if err != nil {
		t.Fatalf("legacy file gone: %v", err)
	}
	if string(legacyAfter) != string(data) {
		t.Error("legacy blob was rewritten")
	}
}

func TestLegacyIgnoredWhenCurrentExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")
	legacy := filepath.Join(dir, "legacy.json")

	current := []Item{{ID: "cur", URL: "https://a.com", Title: "Current", Author: "X", AddedAt: time.Now(), Status: StatusUnread}}
	old := []Item{{ID: "old", URL: "https://b.com", Title: "Old", Author: "Y", AddedAt: time.Now(), Status: StatusUnread}}
	cd, _ := json.Marshal(current)
	od, _ := json.Marshal(old)
	os.WriteFile(path, cd, 0o644)
	os.WriteFile(legacy, od, 0o644)

	s, err := Open(path, legacy, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got := s.Items()
	if len(got) != 1 || got[0].ID != "cur" {
		t.Fatalf("expected only current blob to load, got %+v", got)
	}
}

func TestCorruptBlobStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing corrupt blob: %v", err)
	}

	s, err := Open(path, filepath.Join(dir, "legacy.json"), nil)
	if err != nil {
		t.Fatalf("open should recover from corrupt blob: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}

	// The bad blob is kept for inspection.
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("expected corrupt backup file: %v", err)
	}

	// The store works normally afterwards.
	if _, err := s.Add("https://a.com/1", sampleMetadata()); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
}

func TestUnknownStatusInBlobStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	// Well-formed JSON carrying a status outside the known set.
	blob := `[{"id":"i1","url":"https://a.com/1","title":"A Post","author":"J. Doe","addedAt":"2025-01-02T03:04:05Z","status":"STARRED"}]`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatalf("writing blob: %v", err)
	}

	s, err := Open(path, filepath.Join(dir, "legacy.json"), nil)
	if err != nil {
		t.Fatalf("open should recover from invalid blob: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("expected corrupt backup file: %v", err)
	}
}

func TestOpenEmptyWhenNothingExists(t *testing.T) {
	s := testStore(t)
	if s.Len() != 0 {
		t.Errorf("expected empty collection, got %d", s.Len())
	}
}

func TestOpenCreatesDataDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "deep", "items.json")

	s, err := Open(path, filepath.Join(dir, "legacy.json"), nil)
	if err != nil {
		t.Fatalf("opening store in nested dir: %v", err)
	}
	if _, err := s.Add("https://a.com/1", sampleMetadata()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected blob at %s: %v", path, err)
	}
}
