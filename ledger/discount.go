/*
discount.go - Pure discount calculator

PURPOSE:
  Maps pump prices and customer inputs to the discount owed and the total
  fuel value to dispense. Two modes:

  Amount mode: the customer pays a rupee amount; the discount is the litre
  equivalent of that amount at the pump price.

      discount   = customerAmount / unitPrice
      fuelToGive = customerAmount + discount

  Volume mode: the customer buys a litre quantity with a fixed per-litre
  discount (default 1).

      totalAmount   = liters * unitPrice
      totalDiscount = liters * perLiterDiscount
      fuelToGive    = totalAmount + totalDiscount

  Both modes are pure and never touch the ledger. Results are rounded to
  two places, half up.
*/
package ledger

import "github.com/shopspring/decimal"

// DefaultPerLiterDiscount is the standard promotional discount per litre.
var DefaultPerLiterDiscount = decimal.NewFromInt(1)

// AmountModeResult is the outcome of an amount-mode calculation.
type AmountModeResult struct {
	Discount   decimal.Decimal `json:"discount"`
	FuelToGive decimal.Decimal `json:"fuelToGive"`
}

// VolumeModeResult is the outcome of a volume-mode calculation.
type VolumeModeResult struct {
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	FuelToGive    decimal.Decimal `json:"fuelToGive"`
}

// AmountModeDiscount computes the discount for a customer paying
// customerAmount at unitPrice. Both inputs must be positive.
func AmountModeDiscount(unitPrice, customerAmount decimal.Decimal) (AmountModeResult, error) {
	if unitPrice.Sign() <= 0 {
		return AmountModeResult{}, validationErr("unitPrice", "set fuel prices first")
	}
	if customerAmount.Sign() <= 0 {
		return AmountModeResult{}, validationErr("customerAmount", "enter a valid customer amount")
	}

	discount := customerAmount.Div(unitPrice)
	fuelToGive := customerAmount.Add(discount)

	return AmountModeResult{
		Discount:   discount.Round(2),
		FuelToGive: fuelToGive.Round(2),
	}, nil
}

// VolumeModeDiscount computes the totals for liters sold at unitPrice with
// perLiterDiscount off each litre. A zero perLiterDiscount falls back to
// DefaultPerLiterDiscount.
func VolumeModeDiscount(liters, perLiterDiscount, unitPrice decimal.Decimal) (VolumeModeResult, error) {
	if liters.Sign() <= 0 {
		return VolumeModeResult{}, validationErr("liters", "enter a valid litre quantity")
	}
	if unitPrice.Sign() <= 0 {
		return VolumeModeResult{}, validationErr("unitPrice", "set fuel prices first")
	}
	if perLiterDiscount.IsZero() {
		perLiterDiscount = DefaultPerLiterDiscount
	}
	if perLiterDiscount.IsNegative() {
		return VolumeModeResult{}, validationErr("perLiterDiscount", "per-litre discount cannot be negative")
	}

	totalAmount := liters.Mul(unitPrice)
	totalDiscount := liters.Mul(perLiterDiscount)
	fuelToGive := totalAmount.Add(totalDiscount)

	return VolumeModeResult{
		TotalAmount:   totalAmount.Round(2),
		TotalDiscount: totalDiscount.Round(2),
		FuelToGive:    fuelToGive.Round(2),
	}, nil
}
