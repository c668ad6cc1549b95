/*
Package sqlite is the durable backend of the record book.

PURPOSE:
  Holds the full state snapshot as a single keyed record in SQLite, the Go
  stand-in for the original app's keyed IndexedDB object store. One fixed
  key, one row, replaced wholesale on every save together with a
  last_updated stamp.

WAL MODE:
  The database is opened with WAL for better crash recovery. A single
  connection is enforced; SQLite's own single-writer semantics protect the
  row if writes ever overlap.

USAGE:
  store, err := sqlite.New("./data/fuelrecord.db")
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - store/store.go:     Interface definition
  - store/reconcile.go: How this backend is composed with the backup store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// snapshotKey is the fixed key of the single snapshot record, kept equal to
// the original app's IndexedDB key.
const snapshotKey = "fuelRecordData"

// Store implements store.Store on a SQLite file.
type Store struct {
	db *sqlx.DB
}

// New opens (and if needed creates) the database at path. Use ":memory:"
// for tests.
func New(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS fuel_data (
		key TEXT PRIMARY KEY,
		snapshot_json TEXT NOT NULL,
		last_updated TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the snapshot record, stamping LastUpdated.
func (s *Store) Save(ctx context.Context, snap ledger.Snapshot) error {
	snap.LastUpdated = ledger.Now()

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO fuel_data (key, snapshot_json, last_updated)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			snapshot_json = excluded.snapshot_json,
			last_updated = excluded.last_updated
	`
	_, err = s.db.ExecContext(ctx, query,
		snapshotKey,
		string(raw),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot record. Returns (nil, nil) when the record has
// never been written.
func (s *Store) Load(ctx context.Context) (*ledger.Snapshot, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw,
		"SELECT snapshot_json FROM fuel_data WHERE key = ?", snapshotKey)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
