/*
Package ledger is the core domain of the fuel record book.

PURPOSE:
  Holds the data model and business rules for a single attendant's shift:
  the transaction ledger, the shift lifecycle, the fuel price table, and
  the discount calculator. Everything here is plain in-memory state; the
  store package handles durability.

KEY CONCEPTS IN THIS FILE (types.go):
  - Transaction: One customer payment with an optional fuel discount
  - ShiftInfo: The currently open shift (employee, start, optional end)
  - ShiftSummary: An immutable archived shift with computed totals
  - FuelPrices: Unit prices for the three pump products
  - Snapshot: The full persistable state in one value

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all money, never float64
  2. Authority: In-memory state is the source of truth; stores hold copies
  3. Wire-shaped: JSON tags match the original record book's export format,
     so old backups import cleanly

SEE ALSO:
  - ledger.go: Transaction operations and aggregation
  - shift.go: Shift lifecycle
  - book.go: The application-state object tying it all together
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYMENT METHODS
// =============================================================================

type PaymentMethod string

const (
	MethodCash   PaymentMethod = "cash"
	MethodCard   PaymentMethod = "card"
	MethodOnline PaymentMethod = "online"
)

// Methods lists all valid payment methods in display order.
func Methods() []PaymentMethod {
	return []PaymentMethod{MethodCash, MethodCard, MethodOnline}
}

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodOnline:
		return true
	}
	return false
}

// MethodFilter is either a concrete payment method or FilterAll.
type MethodFilter string

const FilterAll MethodFilter = "all"

func (f MethodFilter) Valid() bool {
	return f == FilterAll || PaymentMethod(f).Valid()
}

// Matches reports whether a transaction with the given method passes the filter.
func (f MethodFilter) Matches(m PaymentMethod) bool {
	return f == FilterAll || PaymentMethod(f) == m
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction is one recorded customer payment. Amount and Discount are
// immutable after creation; only the payment method can be reclassified.
// ID doubles as the merge key for import.
type Transaction struct {
	ID            int64           `json:"id"`
	Timestamp     Timestamp       `json:"timestamp"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Amount        decimal.Decimal `json:"amount"`
	Discount      decimal.Decimal `json:"discount"`
}

// =============================================================================
// SHIFT
// =============================================================================

// ShiftInfo describes the currently open shift. A zero EmployeeName means
// no shift has been saved. ShiftEnd is nil while the shift is open-ended.
type ShiftInfo struct {
	EmployeeName string     `json:"employeeName"`
	ShiftStart   Timestamp  `json:"shiftStart"`
	ShiftEnd     *Timestamp `json:"shiftEnd,omitempty"`
}

// Empty reports whether no shift information has been saved.
func (s ShiftInfo) Empty() bool {
	return s.EmployeeName == "" && s.ShiftStart.IsZero()
}

// HasEnd reports whether an explicit end time was recorded.
func (s ShiftInfo) HasEnd() bool {
	return s.ShiftEnd != nil && !s.ShiftEnd.IsZero()
}

// Totals are the per-method aggregates over a set of transactions.
//
// The OnlineDiscount field carries the COMBINED online bucket when produced
// by Aggregate (card discounts are folded in, see ledger.go), and the pure
// online figure when stored inside an archived ShiftSummary. This mirrors
// the station's reimbursement routing: card discounts are settled through
// the online channel.
type Totals struct {
	CashTotal         decimal.Decimal `json:"cashTotal"`
	CashDiscount      decimal.Decimal `json:"cashDiscount"`
	CardTotal         decimal.Decimal `json:"cardTotal"`
	CardDiscount      decimal.Decimal `json:"cardDiscount"`
	OnlineTotal       decimal.Decimal `json:"onlineTotal"`
	OnlineDiscount    decimal.Decimal `json:"onlineDiscount"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
	TotalDiscount     decimal.Decimal `json:"totalDiscount"`
	TotalTransactions int             `json:"totalTransactions"`
}

// ShiftSummary is an immutable archived shift. Transactions is a frozen
// copy of the ledger at close time; Summary holds the computed totals.
type ShiftSummary struct {
	ID           int64         `json:"id"`
	EmployeeName string        `json:"employeeName"`
	ShiftStart   Timestamp     `json:"shiftStart"`
	ShiftEnd     Timestamp     `json:"shiftEnd"`
	Transactions []Transaction `json:"transactions"`
	Summary      Totals        `json:"summary"`
}

// =============================================================================
// FUEL PRICES
// =============================================================================

type FuelType string

const (
	FuelNormal FuelType = "normal"
	FuelXP95   FuelType = "xp95"
	FuelDiesel FuelType = "diesel"
)

// FuelPrices holds the unit price per litre for each pump product.
type FuelPrices struct {
	Normal decimal.Decimal `json:"normal"`
	XP95   decimal.Decimal `json:"xp95"`
	Diesel decimal.Decimal `json:"diesel"`
}

// =============================================================================
// SNAPSHOT - The full persistable state
// =============================================================================

// Snapshot is the unit of persistence: everything the record book needs to
// survive a restart, written to both storage backends on every mutation.
type Snapshot struct {
	Transactions []Transaction  `json:"transactions"`
	ShiftInfo    ShiftInfo      `json:"shiftInfo"`
	ShiftHistory []ShiftSummary `json:"shiftHistory"`
	FuelPrices   FuelPrices     `json:"fuelPrices"`
	LastUpdated  Timestamp      `json:"lastUpdated,omitempty"`
}

// DefaultPrices returns the compiled-in price table used until the operator
// saves their own.
func DefaultPrices() FuelPrices {
	return FuelPrices{
		Normal: decimal.NewFromFloat(106.39),
		XP95:   decimal.NewFromFloat(113.73),
		Diesel: decimal.NewFromFloat(90.00),
	}
}

// DefaultSnapshot is the state of a brand-new installation.
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Transactions: []Transaction{},
		ShiftHistory: []ShiftSummary{},
		FuelPrices:   DefaultPrices(),
	}
}

// Normalize fills nil slices and zero prices with defaults. Loaded snapshots
// pass through here so partially populated backends still yield usable state.
func (s Snapshot) Normalize() Snapshot {
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.ShiftHistory == nil {
		s.ShiftHistory = []ShiftSummary{}
	}
	if s.FuelPrices.Normal.IsZero() && s.FuelPrices.XP95.IsZero() && s.FuelPrices.Diesel.IsZero() {
		s.FuelPrices = DefaultPrices()
	}
	return s
}
