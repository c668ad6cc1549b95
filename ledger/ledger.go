/*
ledger.go - Transaction list algebra and aggregation

PURPOSE:
  Pure functions over transaction slices: filtering, counting, and the
  per-method aggregation that drives the dashboard and shift summaries.
  Mutating operations live on Book (book.go), which owns the live slice
  and triggers persistence.

THE COMBINED ONLINE BUCKET:
  Aggregate folds card discounts into the online discount figure. This is
  an intentional business rule, not a bug: card-method discounts are
  reimbursed to the station through the same channel as online discounts,
  so the dashboard shows them in one bucket. Keep it this way.

    onlineDiscount (displayed) = cardDiscount + pure onlineDiscount
    totalDiscount              = cashDiscount + onlineDiscount (combined)
    grandTotal                 = cashTotal + cardTotal + onlineTotal

  Archived shift summaries store the PURE online discount instead
  (combined minus card); see shift.go.
*/
package ledger

import "github.com/shopspring/decimal"

// Filter returns the transactions matching f, preserving order. The input
// slice is never mutated; the result shares no backing array with it.
func Filter(txs []Transaction, f MethodFilter) []Transaction {
	if f == FilterAll {
		out := make([]Transaction, len(txs))
		copy(out, txs)
		return out
	}
	out := []Transaction{}
	for _, tx := range txs {
		if f.Matches(tx.PaymentMethod) {
			out = append(out, tx)
		}
	}
	return out
}

// Counts returns the number of transactions per payment method plus the
// overall count under FilterAll.
func Counts(txs []Transaction) map[MethodFilter]int {
	counts := map[MethodFilter]int{
		FilterAll:                  len(txs),
		MethodFilter(MethodCash):   0,
		MethodFilter(MethodCard):   0,
		MethodFilter(MethodOnline): 0,
	}
	for _, tx := range txs {
		counts[MethodFilter(tx.PaymentMethod)]++
	}
	return counts
}

// Aggregate computes dashboard totals over txs. Sums accumulate at full
// decimal precision and are rounded to two places at this boundary only.
// OnlineDiscount in the result is the combined bucket (card + online).
func Aggregate(txs []Transaction) Totals {
	var cashTotal, cashDiscount decimal.Decimal
	var cardTotal, cardDiscount decimal.Decimal
	var onlineTotal, onlineDiscount decimal.Decimal

	for _, tx := range txs {
		switch tx.PaymentMethod {
		case MethodCash:
			cashTotal = cashTotal.Add(tx.Amount)
			cashDiscount = cashDiscount.Add(tx.Discount)
		case MethodCard:
			cardTotal = cardTotal.Add(tx.Amount)
			cardDiscount = cardDiscount.Add(tx.Discount)
			// Card discounts settle through the online channel.
			onlineDiscount = onlineDiscount.Add(tx.Discount)
		case MethodOnline:
			onlineTotal = onlineTotal.Add(tx.Amount)
			onlineDiscount = onlineDiscount.Add(tx.Discount)
		}
	}

	grandTotal := cashTotal.Add(cardTotal).Add(onlineTotal)
	totalDiscount := cashDiscount.Add(onlineDiscount)

	return Totals{
		CashTotal:         cashTotal.Round(2),
		CashDiscount:      cashDiscount.Round(2),
		CardTotal:         cardTotal.Round(2),
		CardDiscount:      cardDiscount.Round(2),
		OnlineTotal:       onlineTotal.Round(2),
		OnlineDiscount:    onlineDiscount.Round(2),
		GrandTotal:        grandTotal.Round(2),
		TotalDiscount:     totalDiscount.Round(2),
		TotalTransactions: len(txs),
	}
}

// validateTransaction enforces the creation invariant: non-negative values
// with at least one of amount/discount positive, and a known method.
func validateTransaction(amount, discount decimal.Decimal, method PaymentMethod) error {
	if !method.Valid() {
		return validationErr("paymentMethod", "unknown payment method")
	}
	if amount.IsNegative() {
		return validationErr("amount", "amount cannot be negative")
	}
	if discount.IsNegative() {
		return validationErr("discount", "discount cannot be negative")
	}
	if amount.IsZero() && discount.IsZero() {
		return validationErr("", "enter either a payment amount or a discount amount")
	}
	return nil
}
