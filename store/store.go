/*
Package store defines the persistence interfaces for the record book and
the reconciliation policy between the two redundant backends.

PURPOSE:
  The record book keeps its authoritative state in memory and writes a full
  Snapshot through here after every mutation. Two interchangeable backends
  implement the same Store interface:

    sqlite.Store  - the durable keyed store (single snapshot record)
    backup.Store  - the fallback mirror (four independent JSON files)

  ReconcilingStore (reconcile.go) composes the two and owns the precedence
  and migration rules, so the merge policy is testable without real storage.

SEE ALSO:
  - reconcile.go: Load precedence, one-time migration, dual writes
  - sqlite/:      Durable backend
  - backup/:      Fallback backend
*/
package store

import (
	"context"
	"fmt"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// Store persists full state snapshots.
//
// Load returns (nil, nil) when the backend holds no data at all; a non-nil
// snapshot may still be partial and callers normalize it. Save always
// writes the complete snapshot.
type Store interface {
	Load(ctx context.Context) (*ledger.Snapshot, error)
	Save(ctx context.Context, snap ledger.Snapshot) error
}

// PersistenceError wraps a backend failure with enough context to log
// which side of the redundant pair misbehaved.
type PersistenceError struct {
	Backend string // "durable" or "backup"
	Op      string // "load" or "save"
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s store %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
