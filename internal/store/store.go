package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store owns the reading-item collection. All mutation goes through its
// methods; every mutation rewrites the whole blob on disk.
type Store struct {
	mu    sync.Mutex
	path  string
	items []Item
	log   *zap.Logger
}

// Open loads the collection from path. If path does not exist, legacyPath is
// read once as a migration source (and never written back). If neither
// exists the collection starts empty.
//
// A blob that exists but fails to decode is moved aside to path+".corrupt"
// and the store starts empty rather than refusing to run.
func Open(path, legacyPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{path: path, log: log}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		items, derr := decodeItems(data)
		if derr != nil {
			backup := path + ".corrupt"
			log.Warn("reading list blob failed to decode, starting empty",
				zap.String("path", path), zap.String("backup", backup), zap.Error(derr))
			if rerr := os.Rename(path, backup); rerr != nil {
				return nil, fmt.Errorf("moving corrupt blob aside: %w", rerr)
			}
			return s, nil
		}
		s.items = items
		return s, nil

	case os.IsNotExist(err):
		// One-shot migration from the legacy location.
		legacy, lerr := os.ReadFile(legacyPath)
		if lerr != nil {
			return s, nil
		}
		items, derr := decodeItems(legacy)
		if derr != nil {
			log.Warn("legacy blob failed to decode, starting empty",
				zap.String("path", legacyPath), zap.Error(derr))
			return s, nil
		}
		s.items = items
		log.Info("migrated reading list from legacy location",
			zap.String("from", legacyPath), zap.String("to", path), zap.Int("items", len(items)))
		if perr := s.persist(); perr != nil {
			return nil, perr
		}
		return s, nil

	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
}

func decodeItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	for i := range items {
		if !items[i].Status.Valid() {
			return nil, fmt.Errorf("item %q has unknown status %q", items[i].ID, items[i].Status)
		}
	}
	return items, nil
}

// Items returns a copy of the collection, newest first.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Add creates a fully populated item and prepends it, so insertion order is
// newest first without re-sorting.
func (s *Store) Add(url string, md Metadata) (Item, error) {
	item := Item{
		ID:       uuid.NewString(),
		URL:      url,
		Title:    md.Title,
		Author:   md.Author,
		SiteName: md.SiteName,
		Summary:  md.Summary,
		AddedAt:  time.Now().UTC(),
		Status:   StatusUnread,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item{item}, s.items...)
	if err := s.persist(); err != nil {
		return Item{}, err
	}
	return item, nil
}

// UpdateStatus replaces the status of the item with the given id. An unknown
// id is a no-op. No other field changes and the collection keeps its order.
func (s *Store) UpdateStatus(id string, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = status
			return s.persist()
		}
	}
	return nil
}

// Remove deletes the item with the given id permanently. Callers are
// expected to have confirmed the deletion with the user first; there is no
// undo. An unknown id is a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// persist rewrites the whole blob. Callers hold s.mu.
func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding reading list: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing reading list: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing reading list: %w", err)
	}
	return nil
}
