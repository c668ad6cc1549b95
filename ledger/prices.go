package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate checks that every price is a positive number. Price updates are
// all-or-nothing: one bad value rejects the whole set.
func (p FuelPrices) Validate() error {
	for _, entry := range []struct {
		fuel  FuelType
		price decimal.Decimal
	}{
		{FuelNormal, p.Normal},
		{FuelXP95, p.XP95},
		{FuelDiesel, p.Diesel},
	} {
		if entry.price.Sign() <= 0 {
			return validationErr(string(entry.fuel), "price must be a positive number")
		}
	}
	return nil
}

// For returns the configured unit price for the given fuel type.
func (p FuelPrices) For(fuel FuelType) (decimal.Decimal, error) {
	switch fuel {
	case FuelNormal:
		return p.Normal, nil
	case FuelXP95:
		return p.XP95, nil
	case FuelDiesel:
		return p.Diesel, nil
	}
	return decimal.Zero, fmt.Errorf("unknown fuel type %q", fuel)
}
