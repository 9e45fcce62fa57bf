// Package cache remembers metadata lookups so re-submitting a URL does not
// hit the paid extraction service again. Only the extractor reads it; the
// reading list itself lives in the store's JSON blob.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// Entry is one cached lookup result.
type Entry struct {
	URL       string
	Title     string
	Author    string
	SiteName  string
	Summary   string
	FetchedAt time.Time
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS metadata (
			url        TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			author     TEXT NOT NULL,
			site_name  TEXT NOT NULL DEFAULT '',
			summary    TEXT NOT NULL DEFAULT '',
			fetched_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_metadata_fetched ON metadata(fetched_at);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Get looks up a previously cached result. The second return value reports
// whether anything was found.
func (c *Cache) Get(url string) (Entry, bool, error) {
	var e Entry
	err := c.readDB.QueryRow(`
		SELECT url, title, author, site_name, summary, fetched_at
		FROM metadata WHERE url = ?
	`, url).Scan(&e.URL, &e.Title, &e.Author, &e.SiteName, &e.Summary, &e.FetchedAt)
	if err == sql.ErrNoRows {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("querying metadata: %w", err)
	}
	return e, true, nil
}

func (c *Cache) Put(e Entry) error {
	if e.FetchedAt.IsZero() {
		e.FetchedAt = time.Now()
	}
	_, err := c.writeDB.Exec(`
		INSERT INTO metadata (url, title, author, site_name, summary, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			site_name = excluded.site_name,
			summary = excluded.summary,
			fetched_at = excluded.fetched_at
	`, e.URL, e.Title, e.Author, e.SiteName, e.Summary, e.FetchedAt)
	if err != nil {
		return fmt.Errorf("caching metadata for %s: %w", e.URL, err)
	}
	return nil
}

// Prune deletes entries fetched longer ago than the retention period and
// returns how many were removed.
func (c *Cache) Prune(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := c.writeDB.Exec("DELETE FROM metadata WHERE fetched_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning metadata: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the entry count and on-disk size of the cache.
func (c *Cache) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := c.readDB.QueryRow("SELECT COUNT(*) FROM metadata").Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting entries: %w", err)
	}
	fi, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, fmt.Errorf("reading db size: %w", err)
	}
	return count, fi.Size(), nil
}
