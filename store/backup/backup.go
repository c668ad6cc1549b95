/*
Package backup is the fallback backend of the record book.

PURPOSE:
  Mirrors the state as four independently keyed JSON files in a directory,
  the Go stand-in for the original app's localStorage entries. Each field
  loads on its own: a missing or corrupt file costs only that field, which
  falls back to its compiled-in default during normalization.

FILES:
  transactions.json   shift_info.json   shift_history.json   fuel_prices.json

SEE ALSO:
  - store/store.go:     Interface definition
  - store/reconcile.go: Precedence against the durable store
*/
package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/anshuonline/fuel-record-management/ledger"
)

const (
	transactionsFile = "transactions.json"
	shiftInfoFile    = "shift_info.json"
	shiftHistoryFile = "shift_history.json"
	fuelPricesFile   = "fuel_prices.json"
)

// Store implements store.Store on a directory of JSON files.
type Store struct {
	dir string
}

// New creates the backup directory if needed and returns the store.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the four fields as separate files. Each file is written
// independently; errors are collected so one bad write does not stop the
// others.
func (s *Store) Save(_ context.Context, snap ledger.Snapshot) error {
	var failures []error
	write := func(name string, v any) {
		raw, err := json.Marshal(v)
		if err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", name, err))
			return
		}
		if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", name, err))
		}
	}

	write(transactionsFile, snap.Transactions)
	write(shiftInfoFile, snap.ShiftInfo)
	write(shiftHistoryFile, snap.ShiftHistory)
	write(fuelPricesFile, snap.FuelPrices)

	return errors.Join(failures...)
}

// Load reassembles a snapshot from whichever files exist. Returns
// (nil, nil) when none of the four files are present. A corrupt file is
// logged and skipped, leaving that field to its default.
func (s *Store) Load(_ context.Context) (*ledger.Snapshot, error) {
	var snap ledger.Snapshot
	found := false

	if s.read(transactionsFile, &snap.Transactions) {
		found = true
	}
	if s.read(shiftInfoFile, &snap.ShiftInfo) {
		found = true
	}
	if s.read(shiftHistoryFile, &snap.ShiftHistory) {
		found = true
	}
	if s.read(fuelPricesFile, &snap.FuelPrices) {
		found = true
	}

	if !found {
		return nil, nil
	}
	return &snap, nil
}

// read decodes one file into dst, reporting whether usable data was found.
func (s *Store) read(name string, dst any) bool {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	if err != nil {
		log.Printf("[Backup] failed to read %s: %v", name, err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.Printf("[Backup] failed to decode %s: %v", name, err)
		return false
	}
	return true
}
