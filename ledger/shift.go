/*
shift.go - Shift lifecycle

PURPOSE:
  The shift state machine: NoShift -> Open (SaveShiftInfo) -> Closed
  (EndShift). Closing is a single logical operation: aggregate the ledger,
  snapshot it into an immutable ShiftSummary, prepend to history, then
  reset the live state. The in-memory transition is atomic under the Book
  mutex; persistence happens once afterwards and can be retried without
  re-running the close.

SUMMARY DISCOUNT FIELDS:
  The archived Summary stores the PURE online discount (the dashboard's
  combined bucket minus the card discount) while TotalDiscount keeps the
  combined figure. This reproduces the original record book exactly; see
  ledger.go for the bucket-folding rule.
*/
package ledger

import "context"

// SaveShiftInfo opens or updates the current shift. EmployeeName and start
// time are required; the end time may be left open.
func (b *Book) SaveShiftInfo(ctx context.Context, employeeName string, start Timestamp, end *Timestamp) error {
	if employeeName == "" {
		return validationErr("employeeName", "enter the employee name")
	}
	if start.IsZero() {
		return validationErr("shiftStart", "select the shift start time")
	}
	if end != nil && end.IsZero() {
		end = nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.shiftInfo = ShiftInfo{
		EmployeeName: employeeName,
		ShiftStart:   start,
		ShiftEnd:     end,
	}
	b.persist(ctx)
	return nil
}

// ShiftInfo returns the current shift information.
func (b *Book) ShiftInfo() ShiftInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shiftInfo
}

// EndShift closes the current shift: it archives a summary at the head of
// history and clears the live ledger, shift info and filter.
//
// Returns ErrNoShift when no shift information was saved, and ErrEmptyShift
// when the ledger is empty unless force is set (the operator's override
// after the confirmation prompt).
func (b *Book) EndShift(ctx context.Context, force bool) (ShiftSummary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.shiftInfo.EmployeeName == "" || b.shiftInfo.ShiftStart.IsZero() {
		return ShiftSummary{}, ErrNoShift
	}
	if len(b.transactions) == 0 && !force {
		return ShiftSummary{}, ErrEmptyShift
	}

	end := NewTimestamp(b.now().UTC())
	if b.shiftInfo.HasEnd() {
		end = *b.shiftInfo.ShiftEnd
	}

	txs := make([]Transaction, len(b.transactions))
	copy(txs, b.transactions)

	totals := Aggregate(txs)
	// Archive the pure online discount; the combined bucket stays in
	// TotalDiscount.
	totals.OnlineDiscount = totals.OnlineDiscount.Sub(totals.CardDiscount)

	summary := ShiftSummary{
		ID:           b.nextID(),
		EmployeeName: b.shiftInfo.EmployeeName,
		ShiftStart:   b.shiftInfo.ShiftStart,
		ShiftEnd:     end,
		Transactions: txs,
		Summary:      totals,
	}

	// Archive then clear, in one mutation.
	b.history = append([]ShiftSummary{summary}, b.history...)
	b.transactions = []Transaction{}
	b.shiftInfo = ShiftInfo{}
	b.filter = FilterAll

	b.persist(ctx)
	return summary, nil
}

// History returns a copy of the archived shifts, most recent first.
func (b *Book) History() []ShiftSummary {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ShiftSummary, len(b.history))
	copy(out, b.history)
	return out
}

// ShiftByID returns an archived shift, or false when absent.
func (b *Book) ShiftByID(id int64) (ShiftSummary, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, shift := range b.history {
		if shift.ID == id {
			return shift, true
		}
	}
	return ShiftSummary{}, false
}

// DeleteShift removes an archived shift. Absent ids are a silent no-op.
func (b *Book) DeleteShift(ctx context.Context, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.history[:0]
	removed := false
	for _, shift := range b.history {
		if shift.ID == id {
			removed = true
			continue
		}
		kept = append(kept, shift)
	}
	b.history = kept
	if removed {
		b.persist(ctx)
	}
}

// ClearHistory wipes all archived shifts. The UI confirms before calling.
func (b *Book) ClearHistory(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.history = []ShiftSummary{}
	b.persist(ctx)
}
