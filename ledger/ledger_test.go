package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestBook builds a Book with no persister and a deterministic clock.
func newTestBook(t *testing.T) *ledger.Book {
	t.Helper()
	book := ledger.NewBook(ledger.DefaultSnapshot(), nil)
	base := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	book.SetClock(func() time.Time { return base })
	return book
}

func addTx(t *testing.T, book *ledger.Book, amount, discount string, method ledger.PaymentMethod) ledger.Transaction {
	t.Helper()
	tx, err := book.AddTransaction(context.Background(), dec(amount), dec(discount), method)
	require.NoError(t, err)
	return tx
}

// =============================================================================
// AGGREGATION - The combined online bucket rule
// =============================================================================

func TestAggregate_CombinedOnlineBucket(t *testing.T) {
	// GIVEN: cash {100, 5}, card {200, 10}, online {50, 2}
	// WHEN: aggregating for the dashboard
	// THEN: the card discount folds into the online discount bucket

	book := newTestBook(t)
	addTx(t, book, "100", "5", ledger.MethodCash)
	addTx(t, book, "200", "10", ledger.MethodCard)
	addTx(t, book, "50", "2", ledger.MethodOnline)

	totals := book.Totals()

	assert.Equal(t, "100.00", totals.CashTotal.StringFixed(2))
	assert.Equal(t, "5.00", totals.CashDiscount.StringFixed(2))
	assert.Equal(t, "200.00", totals.CardTotal.StringFixed(2))
	assert.Equal(t, "10.00", totals.CardDiscount.StringFixed(2))
	assert.Equal(t, "50.00", totals.OnlineTotal.StringFixed(2))
	// Combined bucket: card 10 + online 2
	assert.Equal(t, "12.00", totals.OnlineDiscount.StringFixed(2))
	assert.Equal(t, "350.00", totals.GrandTotal.StringFixed(2))
	// Cash 5 + combined bucket 12
	assert.Equal(t, "17.00", totals.TotalDiscount.StringFixed(2))
	assert.Equal(t, 3, totals.TotalTransactions)
}

func TestAggregate_Invariants(t *testing.T) {
	// For any ledger: grandTotal == cash+card+online and
	// totalDiscount == cashDiscount + cardDiscount + onlineDiscount (pure).

	book := newTestBook(t)
	addTx(t, book, "12.34", "0.50", ledger.MethodCash)
	addTx(t, book, "0", "1.25", ledger.MethodCard)
	addTx(t, book, "99.99", "0", ledger.MethodOnline)
	addTx(t, book, "7", "7", ledger.MethodCard)
	addTx(t, book, "3.33", "0.01", ledger.MethodCash)

	totals := book.Totals()

	sum := totals.CashTotal.Add(totals.CardTotal).Add(totals.OnlineTotal)
	assert.True(t, totals.GrandTotal.Equal(sum), "grand total must equal the method totals")

	// OnlineDiscount is the combined bucket, so cash + combined covers all
	// three methods exactly once.
	discounts := totals.CashDiscount.Add(totals.OnlineDiscount)
	assert.True(t, totals.TotalDiscount.Equal(discounts))
}

func TestAggregate_Empty(t *testing.T) {
	totals := ledger.Aggregate(nil)

	assert.True(t, totals.GrandTotal.IsZero())
	assert.True(t, totals.TotalDiscount.IsZero())
	assert.Equal(t, 0, totals.TotalTransactions)
}

// =============================================================================
// ADD / DELETE / RECLASSIFY
// =============================================================================

func TestAddTransaction_Validation(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	// Zero amount AND zero discount is rejected.
	_, err := book.AddTransaction(ctx, decimal.Zero, decimal.Zero, ledger.MethodCash)
	assert.Error(t, err)
	assert.True(t, ledger.IsValidation(err))

	// Negative discount is rejected.
	_, err = book.AddTransaction(ctx, dec("10"), dec("-1"), ledger.MethodCash)
	assert.Error(t, err)

	// Unknown method is rejected.
	_, err = book.AddTransaction(ctx, dec("10"), dec("1"), ledger.PaymentMethod("cheque"))
	assert.Error(t, err)

	// Discount-only transactions are fine.
	tx, err := book.AddTransaction(ctx, decimal.Zero, dec("2.35"), ledger.MethodCash)
	require.NoError(t, err)
	assert.True(t, tx.Amount.IsZero())

	assert.Len(t, book.Transactions(), 1, "failed adds must not mutate the ledger")
}

func TestAddTransaction_MostRecentFirst(t *testing.T) {
	book := newTestBook(t)
	first := addTx(t, book, "10", "0", ledger.MethodCash)
	second := addTx(t, book, "20", "0", ledger.MethodCard)

	txs := book.Transactions()
	require.Len(t, txs, 2)
	assert.Equal(t, second.ID, txs[0].ID, "newest entry leads")
	assert.Equal(t, first.ID, txs[1].ID)
}

func TestDeleteTransaction_IdempotentAndNoIDReuse(t *testing.T) {
	// GIVEN: a recorded transaction
	// WHEN: it is deleted and a new one is added
	// THEN: the deleted id is never reissued, and re-deleting is a no-op

	book := newTestBook(t)
	ctx := context.Background()

	victim := addTx(t, book, "10", "0", ledger.MethodCash)
	book.DeleteTransaction(ctx, victim.ID)
	assert.Empty(t, book.Transactions())

	replacement := addTx(t, book, "20", "0", ledger.MethodCash)
	assert.Greater(t, replacement.ID, victim.ID)

	// Absent id: silent no-op.
	book.DeleteTransaction(ctx, 424242)
	assert.Len(t, book.Transactions(), 1)
}

func TestUpdatePaymentMethod_OnlyMethodChanges(t *testing.T) {
	book := newTestBook(t)
	ctx := context.Background()

	original := addTx(t, book, "75.50", "1.10", ledger.MethodCash)

	require.NoError(t, book.UpdatePaymentMethod(ctx, original.ID, ledger.MethodOnline))

	txs := book.Transactions()
	require.Len(t, txs, 1)
	updated := txs[0]

	assert.Equal(t, ledger.MethodOnline, updated.PaymentMethod)
	assert.Equal(t, original.ID, updated.ID)
	assert.True(t, original.Amount.Equal(updated.Amount))
	assert.True(t, original.Discount.Equal(updated.Discount))
	assert.True(t, original.Timestamp.Equal(updated.Timestamp))
}

func TestUpdatePaymentMethod_AbsentIDIsNoOp(t *testing.T) {
	book := newTestBook(t)
	addTx(t, book, "10", "0", ledger.MethodCash)

	err := book.UpdatePaymentMethod(context.Background(), 999999, ledger.MethodCard)
	assert.NoError(t, err)
	assert.Equal(t, ledger.MethodCash, book.Transactions()[0].PaymentMethod)
}

// =============================================================================
// FILTERING
// =============================================================================

func TestFilterAndCounts(t *testing.T) {
	book := newTestBook(t)
	addTx(t, book, "10", "0", ledger.MethodCash)
	addTx(t, book, "20", "1", ledger.MethodCard)
	addTx(t, book, "30", "2", ledger.MethodCard)
	addTx(t, book, "40", "3", ledger.MethodOnline)

	counts := book.Counts()
	assert.Equal(t, 4, counts[ledger.FilterAll])
	assert.Equal(t, 1, counts[ledger.MethodFilter(ledger.MethodCash)])
	assert.Equal(t, 2, counts[ledger.MethodFilter(ledger.MethodCard)])
	assert.Equal(t, 1, counts[ledger.MethodFilter(ledger.MethodOnline)])

	require.NoError(t, book.SetFilter(ledger.MethodFilter(ledger.MethodCard)))
	filtered := book.FilteredTransactions()
	require.Len(t, filtered, 2)
	for _, tx := range filtered {
		assert.Equal(t, ledger.MethodCard, tx.PaymentMethod)
	}

	subtotals := book.FilteredTotals()
	assert.Equal(t, "50.00", subtotals.CardTotal.StringFixed(2))
	assert.Equal(t, 2, subtotals.TotalTransactions)

	// Filtering never mutates the ledger.
	assert.Len(t, book.Transactions(), 4)

	assert.Error(t, book.SetFilter(ledger.MethodFilter("bitcoin")))
}
