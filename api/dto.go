/*
dto.go - Request/response types for the record book API

PURPOSE:
  JSON carriers between the UI and the Book. Domain types (Transaction,
  ShiftSummary, Totals, FuelPrices) are already wire-shaped to match the
  original backup format, so responses embed them directly; these types
  cover requests and composite responses.

NAMING CONVENTION:
  - *Request: Request body types from the UI
  - *DTO / *Response: Composite response wrappers

VALIDATION:
  Handlers delegate validation to the domain; DTOs are pure data carriers.
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/anshuonline/fuel-record-management/ledger"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// AddTransactionRequest records a new payment.
type AddTransactionRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"paymentMethod"`
}

// UpdateMethodRequest reclassifies an existing transaction.
type UpdateMethodRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// ShiftInfoRequest opens or updates the current shift. Times arrive as
// strings so both RFC3339 and the datetime-local form are accepted.
type ShiftInfoRequest struct {
	EmployeeName string `json:"employeeName"`
	ShiftStart   string `json:"shiftStart"`
	ShiftEnd     string `json:"shiftEnd,omitempty"`
}

// EndShiftRequest carries the operator's override for closing an empty
// shift after the confirmation prompt.
type EndShiftRequest struct {
	Force bool `json:"force"`
}

// PricesRequest replaces the fuel price table.
type PricesRequest struct {
	Normal decimal.Decimal `json:"normal"`
	XP95   decimal.Decimal `json:"xp95"`
	Diesel decimal.Decimal `json:"diesel"`
}

// AmountModeRequest asks for an amount-mode discount calculation.
type AmountModeRequest struct {
	FuelType       string          `json:"fuelType,omitempty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	CustomerAmount decimal.Decimal `json:"customerAmount"`
}

// VolumeModeRequest asks for a volume-mode discount calculation.
type VolumeModeRequest struct {
	FuelType         string          `json:"fuelType,omitempty"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Liters           decimal.Decimal `json:"liters"`
	PerLiterDiscount decimal.Decimal `json:"perLiterDiscount"`
}

// ImportRequest wraps an uploaded backup document. AdoptPrices is the
// operator's answer to the price-overwrite confirmation.
type ImportRequest struct {
	AdoptPrices bool                  `json:"adoptPrices"`
	Document    ledger.ExportDocument `json:"document"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// DashboardDTO is everything the current-shift page renders.
type DashboardDTO struct {
	Totals       ledger.Totals               `json:"totals"`
	Counts       map[ledger.MethodFilter]int `json:"counts"`
	Filter       ledger.MethodFilter         `json:"filter"`
	Transactions []ledger.Transaction        `json:"transactions"`
	ShiftInfo    ledger.ShiftInfo            `json:"shiftInfo"`
	FuelPrices   ledger.FuelPrices           `json:"fuelPrices"`
}

// FilteredDTO is the filtered-view subtotal strip.
type FilteredDTO struct {
	Filter       ledger.MethodFilter  `json:"filter"`
	Transactions []ledger.Transaction `json:"transactions"`
	Totals       ledger.Totals        `json:"totals"`
}

// ShiftInfoDTO reports the open shift, with a suggested start time when no
// shift is open (the original app pre-filled the form with "now").
type ShiftInfoDTO struct {
	ShiftInfo      ledger.ShiftInfo  `json:"shiftInfo"`
	Open           bool              `json:"open"`
	SuggestedStart *ledger.Timestamp `json:"suggestedStart,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
