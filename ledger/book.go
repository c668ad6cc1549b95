/*
book.go - The application-state object

PURPOSE:
  Book owns all live state: the transaction ledger for the open shift, the
  shift info, the archived history, the price table, and the active filter.
  Every mutator validates, applies the change in memory, then writes the
  whole snapshot through the Persister. The in-memory state is always the
  source of truth; a failed persistence write is logged and never rolls the
  mutation back.

LIFECYCLE:
  book := ledger.NewBook(loadedSnapshot, store)
  ... mutators ...
  book.Save(ctx)   // final flush at shutdown

CONCURRENCY:
  The record book is logically single-operator, but HTTP handlers and the
  autosave ticker can overlap, so a single mutex serializes every method.
*/
package ledger

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Persister durably stores snapshots. The store package's ReconcilingStore
// is the production implementation.
type Persister interface {
	Save(ctx context.Context, snap Snapshot) error
}

// Book is the single stateful controller for the record book.
type Book struct {
	mu sync.Mutex

	transactions []Transaction
	shiftInfo    ShiftInfo
	history      []ShiftSummary
	prices       FuelPrices
	filter       MethodFilter

	lastID    int64
	persister Persister
	now       func() time.Time
}

// NewBook builds a Book from a loaded snapshot. The snapshot is normalized,
// so partially populated backends are safe to pass straight in.
func NewBook(snap Snapshot, persister Persister) *Book {
	snap = snap.Normalize()

	b := &Book{
		transactions: snap.Transactions,
		shiftInfo:    snap.ShiftInfo,
		history:      snap.ShiftHistory,
		prices:       snap.FuelPrices,
		filter:       FilterAll,
		persister:    persister,
		now:          time.Now,
	}

	// Seed the id generator past everything already recorded so imported or
	// reloaded ids are never reissued.
	for _, tx := range b.transactions {
		if tx.ID > b.lastID {
			b.lastID = tx.ID
		}
	}
	for _, shift := range b.history {
		if shift.ID > b.lastID {
			b.lastID = shift.ID
		}
		for _, tx := range shift.Transactions {
			if tx.ID > b.lastID {
				b.lastID = tx.ID
			}
		}
	}

	return b
}

// SetClock overrides the time source. Tests only.
func (b *Book) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// nextID issues a unique, monotonically increasing id. Ids are millisecond
// timestamps like the original record book, bumped forward when two events
// land in the same millisecond or the clock steps back.
func (b *Book) nextID() int64 {
	id := b.now().UnixMilli()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return id
}

// persist writes the current snapshot through the Persister. Failures are
// logged, never propagated: the in-memory mutation has already happened and
// stays authoritative.
func (b *Book) persist(ctx context.Context) {
	if b.persister == nil {
		return
	}
	if err := b.persister.Save(ctx, b.snapshotLocked()); err != nil {
		log.Printf("[Book] persistence failed (state kept in memory): %v", err)
	}
}

func (b *Book) snapshotLocked() Snapshot {
	txs := make([]Transaction, len(b.transactions))
	copy(txs, b.transactions)
	history := make([]ShiftSummary, len(b.history))
	copy(history, b.history)

	return Snapshot{
		Transactions: txs,
		ShiftInfo:    b.shiftInfo,
		ShiftHistory: history,
		FuelPrices:   b.prices,
	}
}

// Snapshot returns a copy of the full current state.
func (b *Book) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

// Save flushes the current state through the Persister. Used by the
// autosave ticker and the shutdown path.
func (b *Book) Save(ctx context.Context) error {
	b.mu.Lock()
	snap := b.snapshotLocked()
	b.mu.Unlock()

	if b.persister == nil {
		return nil
	}
	return b.persister.Save(ctx, snap)
}

// =============================================================================
// TRANSACTION LEDGER OPERATIONS
// =============================================================================

// AddTransaction records a new payment at the head of the ledger
// (most-recent-first) and persists.
func (b *Book) AddTransaction(ctx context.Context, amount, discount decimal.Decimal, method PaymentMethod) (Transaction, error) {
	if err := validateTransaction(amount, discount, method); err != nil {
		return Transaction{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	tx := Transaction{
		ID:            b.nextID(),
		Timestamp:     NewTimestamp(b.now().UTC()),
		PaymentMethod: method,
		Amount:        amount,
		Discount:      discount,
	}
	b.transactions = append([]Transaction{tx}, b.transactions...)
	b.persist(ctx)
	return tx, nil
}

// DeleteTransaction removes the transaction with the given id. Absent ids
// are a silent no-op; the UI confirms before calling.
func (b *Book) DeleteTransaction(ctx context.Context, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.transactions[:0]
	removed := false
	for _, tx := range b.transactions {
		if tx.ID == id {
			removed = true
			continue
		}
		kept = append(kept, tx)
	}
	b.transactions = kept
	if removed {
		b.persist(ctx)
	}
}

// UpdatePaymentMethod reclassifies a transaction in place. Only the method
// changes; amount, discount, timestamp and id are immutable. Absent ids are
// a silent no-op.
func (b *Book) UpdatePaymentMethod(ctx context.Context, id int64, method PaymentMethod) error {
	if !method.Valid() {
		return validationErr("paymentMethod", "unknown payment method")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.transactions {
		if b.transactions[i].ID == id {
			b.transactions[i].PaymentMethod = method
			b.persist(ctx)
			return nil
		}
	}
	return nil
}

// Transactions returns a copy of the live ledger, most recent first.
func (b *Book) Transactions() []Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// FilteredTransactions returns the ledger entries passing the active filter.
func (b *Book) FilteredTransactions() []Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Filter(b.transactions, b.filter)
}

// SetFilter switches the active method filter.
func (b *Book) SetFilter(f MethodFilter) error {
	if !f.Valid() {
		return validationErr("filter", "unknown filter")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = f
	return nil
}

// ActiveFilter returns the current method filter.
func (b *Book) ActiveFilter() MethodFilter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Totals aggregates the full live ledger for the dashboard.
func (b *Book) Totals() Totals {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Aggregate(b.transactions)
}

// FilteredTotals aggregates the entries passing the active filter.
func (b *Book) FilteredTotals() Totals {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Aggregate(Filter(b.transactions, b.filter))
}

// Counts returns per-method transaction counts for the filter tabs.
func (b *Book) Counts() map[MethodFilter]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Counts(b.transactions)
}

// =============================================================================
// PRICE TABLE
// =============================================================================

// SetPrices replaces the price table. All three prices must validate or
// nothing changes.
func (b *Book) SetPrices(ctx context.Context, prices FuelPrices) error {
	if err := prices.Validate(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices = prices
	b.persist(ctx)
	return nil
}

// Prices returns the current price table.
func (b *Book) Prices() FuelPrices {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.prices
}

// PriceFor returns the configured unit price for a fuel type.
func (b *Book) PriceFor(fuel FuelType) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.prices.For(fuel)
}

// =============================================================================
// CLEAR ALL
// =============================================================================

// ClearAll wipes the live ledger, shift info and filter. History and the
// price table survive, matching the original record book. The UI confirms
// before calling.
func (b *Book) ClearAll(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.transactions = []Transaction{}
	b.shiftInfo = ShiftInfo{}
	b.filter = FilterAll
	b.persist(ctx)
}
