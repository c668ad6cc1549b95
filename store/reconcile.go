/*
reconcile.go - Precedence and migration between the two backends

PURPOSE:
  Implements the reconciliation protocol:

  Load (startup only):
    1. Read the durable store. If it has a snapshot, adopt it as
       authoritative and mirror it into the backup store.
    2. Otherwise fall back to the backup store; if it has anything,
       adopt that and immediately write it into the durable store
       (one-time migration).
    3. If both are empty or unavailable, start from compiled-in defaults.

  Save (after every mutation, plus the periodic autosave):
    Write the snapshot to BOTH backends independently. One backend failing
    is logged and tolerated; the call only errors when both fail.

CONCURRENCY:
  A mutex serializes Save calls so an autosave tick and a mutation-triggered
  write never interleave on the same keys.
*/
package store

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// ReconcilingStore composes the durable and backup backends.
type ReconcilingStore struct {
	durable Store
	backup  Store
	mu      sync.Mutex
}

// NewReconcilingStore wires the two backends together. Either may be nil
// in tests; a nil backend is treated as empty and failing writes silently.
func NewReconcilingStore(durable, backup Store) *ReconcilingStore {
	return &ReconcilingStore{durable: durable, backup: backup}
}

// Load resolves the startup snapshot per the precedence rules. It always
// returns a usable snapshot; backend errors are logged and degrade to the
// next fallback rather than failing startup.
func (r *ReconcilingStore) Load(ctx context.Context) ledger.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.durable != nil {
		snap, err := r.durable.Load(ctx)
		if err != nil {
			log.Printf("[Store] %v", &PersistenceError{Backend: "durable", Op: "load", Err: err})
		} else if snap != nil {
			normalized := snap.Normalize()
			r.mirror(ctx, r.backup, "backup", normalized)
			return normalized
		}
	}

	if r.backup != nil {
		snap, err := r.backup.Load(ctx)
		if err != nil {
			log.Printf("[Store] %v", &PersistenceError{Backend: "backup", Op: "load", Err: err})
		} else if snap != nil {
			normalized := snap.Normalize()
			// One-time migration into the durable store.
			r.mirror(ctx, r.durable, "durable", normalized)
			return normalized
		}
	}

	return ledger.DefaultSnapshot()
}

// Save writes the snapshot to both backends. Returns an error only when
// every configured backend failed; a single failure is redundancy working.
func (r *ReconcilingStore) Save(ctx context.Context, snap ledger.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var failures []error
	wrote := false

	if r.durable != nil {
		if err := r.durable.Save(ctx, snap); err != nil {
			perr := &PersistenceError{Backend: "durable", Op: "save", Err: err}
			log.Printf("[Store] %v", perr)
			failures = append(failures, perr)
		} else {
			wrote = true
		}
	}
	if r.backup != nil {
		if err := r.backup.Save(ctx, snap); err != nil {
			perr := &PersistenceError{Backend: "backup", Op: "save", Err: err}
			log.Printf("[Store] %v", perr)
			failures = append(failures, perr)
		} else {
			wrote = true
		}
	}

	if !wrote && len(failures) > 0 {
		return errors.Join(failures...)
	}
	return nil
}

func (r *ReconcilingStore) mirror(ctx context.Context, dst Store, name string, snap ledger.Snapshot) {
	if dst == nil {
		return
	}
	if err := dst.Save(ctx, snap); err != nil {
		log.Printf("[Store] %v", &PersistenceError{Backend: name, Op: "save", Err: err})
	}
}
