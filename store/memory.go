package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is a Store backed by a serialized snapshot in memory. It round-
// trips through JSON so tests exercise the same encoding as the real
// backends.
type Memory struct {
	mu    sync.RWMutex
	data  []byte
	saves int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*ledger.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, nil
	}
	var snap ledger.Snapshot
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *Memory) Save(_ context.Context, snap ledger.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = raw
	m.saves++
	return nil
}

// Saves reports how many writes the store has accepted.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
