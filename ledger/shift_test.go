package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshuonline/fuel-record-management/ledger"
)

func openShift(t *testing.T, book *ledger.Book, name string) {
	t.Helper()
	start := ledger.NewTimestamp(time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC))
	require.NoError(t, book.SaveShiftInfo(context.Background(), name, start, nil))
}

// =============================================================================
// SHIFT INFO
// =============================================================================

func TestSaveShiftInfo_Validation(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()
	start := ledger.Now()

	err := book.SaveShiftInfo(ctx, "", start, nil)
	assert.True(t, ledger.IsValidation(err), "empty employee name is rejected")

	err = book.SaveShiftInfo(ctx, "Asha", ledger.Timestamp{}, nil)
	assert.True(t, ledger.IsValidation(err), "missing start time is rejected")

	assert.True(t, book.ShiftInfo().Empty(), "failed saves leave no shift")

	require.NoError(t, book.SaveShiftInfo(ctx, "Asha", start, nil))
	info := book.ShiftInfo()
	assert.Equal(t, "Asha", info.EmployeeName)
	assert.False(t, info.HasEnd(), "end time stays open when omitted")
}

// =============================================================================
// END SHIFT
// =============================================================================

func TestEndShift_RequiresShiftInfo(t *testing.T) {
	book := newTestBook(t)
	addTx(t, book, "10", "0", ledger.MethodCash)

	_, err := book.EndShift(context.Background(), false)
	assert.ErrorIs(t, err, ledger.ErrNoShift)
}

func TestEndShift_EmptyLedgerGate(t *testing.T) {
	// GIVEN: an open shift with no transactions
	// WHEN: ending without force
	// THEN: the close is blocked until the operator overrides

	book := newTestBook(t)
	ctx := context.Background()
	openShift(t, book, "Asha")

	_, err := book.EndShift(ctx, false)
	assert.ErrorIs(t, err, ledger.ErrEmptyShift)
	assert.False(t, book.ShiftInfo().Empty(), "blocked close changes nothing")

	summary, err := book.EndShift(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, summary.Transactions)
	assert.Equal(t, 0, summary.Summary.TotalTransactions)
}

func TestEndShift_ArchiveThenClear(t *testing.T) {
	// GIVEN: an open shift with three transactions and an active filter
	// WHEN: the shift ends
	// THEN: history gains the frozen summary and the live state resets

	book := newTestBook(t)
	ctx := context.Background()
	openShift(t, book, "Asha")

	addTx(t, book, "100", "5", ledger.MethodCash)
	addTx(t, book, "200", "10", ledger.MethodCard)
	addTx(t, book, "50", "2", ledger.MethodOnline)
	require.NoError(t, book.SetFilter(ledger.MethodFilter(ledger.MethodCard)))

	summary, err := book.EndShift(ctx, false)
	require.NoError(t, err)

	// Live state is reset.
	assert.Empty(t, book.Transactions())
	assert.True(t, book.ShiftInfo().Empty())
	assert.Equal(t, ledger.FilterAll, book.ActiveFilter())

	// The summary froze the ledger.
	history := book.History()
	require.Len(t, history, 1)
	assert.Equal(t, summary.ID, history[0].ID)
	assert.Equal(t, "Asha", history[0].EmployeeName)
	assert.Len(t, history[0].Transactions, 3)

	// Archived totals: pure online discount, combined total discount.
	archived := history[0].Summary
	assert.Equal(t, "10.00", archived.CardDiscount.StringFixed(2))
	assert.Equal(t, "2.00", archived.OnlineDiscount.StringFixed(2), "archive stores the PURE online discount")
	assert.Equal(t, "17.00", archived.TotalDiscount.StringFixed(2), "total keeps the combined figure")
	assert.Equal(t, "350.00", archived.GrandTotal.StringFixed(2))

	// Combined bucket is recoverable as onlineDiscount + cardDiscount.
	combined := archived.OnlineDiscount.Add(archived.CardDiscount)
	assert.Equal(t, "12.00", combined.StringFixed(2))
}

func TestEndShift_UsesRecordedEndTime(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	start := ledger.NewTimestamp(time.Date(2025, time.June, 1, 8, 0, 0, 0, time.UTC))
	end := ledger.NewTimestamp(time.Date(2025, time.June, 1, 16, 0, 0, 0, time.UTC))
	require.NoError(t, book.SaveShiftInfo(ctx, "Asha", start, &end))
	addTx(t, book, "10", "0", ledger.MethodCash)

	summary, err := book.EndShift(ctx, false)
	require.NoError(t, err)
	assert.True(t, summary.ShiftEnd.Equal(end))
}

func TestEndShift_DefaultsEndTimeToNow(t *testing.T) {
	book := newTestBook(t)
	now := time.Date(2025, time.June, 1, 17, 30, 0, 0, time.UTC)
	book.SetClock(func() time.Time { return now })

	openShift(t, book, "Asha")
	addTx(t, book, "10", "0", ledger.MethodCash)

	summary, err := book.EndShift(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, summary.ShiftEnd.Time.Equal(now))
}

func TestEndShift_HistoryIsMostRecentFirst(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	openShift(t, book, "Asha")
	addTx(t, book, "10", "0", ledger.MethodCash)
	first, err := book.EndShift(ctx, false)
	require.NoError(t, err)

	openShift(t, book, "Binod")
	addTx(t, book, "20", "0", ledger.MethodCard)
	second, err := book.EndShift(ctx, false)
	require.NoError(t, err)

	history := book.History()
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Greater(t, second.ID, first.ID)
}

// =============================================================================
// HISTORY MAINTENANCE
// =============================================================================

func TestDeleteShiftAndClearHistory(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	openShift(t, book, "Asha")
	addTx(t, book, "10", "0", ledger.MethodCash)
	summary, err := book.EndShift(ctx, false)
	require.NoError(t, err)

	// Absent id: no-op.
	book.DeleteShift(ctx, 999999)
	assert.Len(t, book.History(), 1)

	book.DeleteShift(ctx, summary.ID)
	assert.Empty(t, book.History())

	openShift(t, book, "Binod")
	addTx(t, book, "20", "0", ledger.MethodCash)
	_, err = book.EndShift(ctx, false)
	require.NoError(t, err)

	book.ClearHistory(ctx)
	assert.Empty(t, book.History())
}

// =============================================================================
// PRICE TABLE
// =============================================================================

func TestSetPrices_AllOrNothing(t *testing.T) {
	// GIVEN: the default price table
	// WHEN: saving with xp95 = 0
	// THEN: the save is rejected and every price is unchanged

	book := newTestBook(t)
	ctx := context.Background()

	err := book.SetPrices(ctx, ledger.FuelPrices{
		Normal: dec("110"),
		XP95:   dec("0"),
		Diesel: dec("95"),
	})
	assert.True(t, ledger.IsValidation(err))

	price, perr := book.PriceFor(ledger.FuelXP95)
	require.NoError(t, perr)
	assert.Equal(t, "113.73", price.StringFixed(2), "rejected save leaves the table untouched")

	require.NoError(t, book.SetPrices(ctx, ledger.FuelPrices{
		Normal: dec("110"),
		XP95:   dec("118.50"),
		Diesel: dec("95"),
	}))
	price, perr = book.PriceFor(ledger.FuelDiesel)
	require.NoError(t, perr)
	assert.Equal(t, "95.00", price.StringFixed(2))

	_, err = book.PriceFor(ledger.FuelType("kerosene"))
	assert.Error(t, err)
}

// =============================================================================
// CLEAR ALL
// =============================================================================

func TestClearAll_KeepsHistoryAndPrices(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	openShift(t, book, "Asha")
	addTx(t, book, "10", "0", ledger.MethodCash)
	_, err := book.EndShift(ctx, false)
	require.NoError(t, err)

	openShift(t, book, "Binod")
	addTx(t, book, "20", "0", ledger.MethodCard)
	require.NoError(t, book.SetFilter(ledger.MethodFilter(ledger.MethodCard)))

	book.ClearAll(ctx)

	assert.Empty(t, book.Transactions())
	assert.True(t, book.ShiftInfo().Empty())
	assert.Equal(t, ledger.FilterAll, book.ActiveFilter())
	assert.Len(t, book.History(), 1, "history survives a clear")

	price, err := book.PriceFor(ledger.FuelNormal)
	require.NoError(t, err)
	assert.Equal(t, "106.39", price.StringFixed(2), "prices survive a clear")
}
