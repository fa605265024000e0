package cache

import (
	"database/sql"
	"fmt"

	"github.com/dustin/go-humanize"
	_ "modernc.org/sqlite"
)

// DiskCache is the persistent second tier, a single-table SQLite database
// storing each key's pretty-printed result type. modernc.org/sqlite is pure
// Go (no cgo), so binaries linking this package still cross-compile without
// a C toolchain.
type DiskCache struct {
	db *sql.DB
}

// OpenDiskCache opens (creating if absent) the SQLite database at path.
func OpenDiskCache(path string) (*DiskCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: opening sqlite db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS types (key TEXT PRIMARY KEY, pretty TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: creating schema: %w", err)
	}
	return &DiskCache{db: db}, nil
}

// Store upserts the pretty-printed type for key.
func (d *DiskCache) Store(key Key, pretty string) error {
	_, err := d.db.Exec(
		`INSERT INTO types (key, pretty) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET pretty = excluded.pretty`,
		string(key), pretty)
	return err
}

// Lookup returns the stored pretty-printed type for key, if present.
func (d *DiskCache) Lookup(key Key) (string, bool, error) {
	var pretty string
	err := d.db.QueryRow(`SELECT pretty FROM types WHERE key = ?`, string(key)).Scan(&pretty)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return pretty, true, nil
}

// Close releases the underlying database handle.
func (d *DiskCache) Close() error { return d.db.Close() }

// Stat summarizes entry count and on-disk size, for `corecalc cache stat`.
func (d *DiskCache) Stat() (string, error) {
	var count int
	if err := d.db.QueryRow(`SELECT count(*) FROM types`).Scan(&count); err != nil {
		return "", fmt.Errorf("cache: counting entries: %w", err)
	}
	var pageCount, pageSize int64
	if err := d.db.QueryRow(`PRAGMA page_count`).Scan(&pageCount); err != nil {
		return "", fmt.Errorf("cache: reading page_count: %w", err)
	}
	if err := d.db.QueryRow(`PRAGMA page_size`).Scan(&pageSize); err != nil {
		return "", fmt.Errorf("cache: reading page_size: %w", err)
	}
	size := pageCount * pageSize
	return fmt.Sprintf("%d entries, %s on disk", count, humanize.Bytes(uint64(size))), nil
}
