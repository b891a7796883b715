// Package rates holds the statutory tax rates, levies and fixed fees used to
// compute Kenya vehicle import costs. The defaults are compiled in and
// loaded once at startup; a RateTable is read-only after that.
package rates

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
)

// ExciseBracket maps an engine displacement ceiling to an excise duty rate.
// A zero UpToLiters marks the open-ended top bracket.
type ExciseBracket struct {
	UpToLiters decimal.Decimal
	Rate       decimal.Decimal
}

// ServiceFee is a fixed KES line item charged on every import regardless of
// vehicle value.
type ServiceFee struct {
	Name      string
	AmountKES decimal.Decimal
}

// RateTable carries every constant the cost engine needs.
type RateTable struct {
	ImportDutyRate decimal.Decimal
	ExciseBrackets []ExciseBracket
	VATRate        decimal.Decimal
	IDFRate        decimal.Decimal
	RailwayRate    decimal.Decimal
	ExchangeRate   decimal.Decimal // KES per USD
	ServiceFees    []ServiceFee
}

// Default returns the compiled-in KRA rate table.
//
// Excise brackets follow the KRA schedule with closed upper bounds:
// up to 1500cc 20%, 1501-2000cc 25%, 2001-2500cc 30%, above 2500cc 35%.
func Default() RateTable {
	return RateTable{
		ImportDutyRate: decimal.NewFromFloat(0.25),
		ExciseBrackets: []ExciseBracket{
			{UpToLiters: decimal.NewFromFloat(1.5), Rate: decimal.NewFromFloat(0.20)},
			{UpToLiters: decimal.NewFromFloat(2.0), Rate: decimal.NewFromFloat(0.25)},
			{UpToLiters: decimal.NewFromFloat(2.5), Rate: decimal.NewFromFloat(0.30)},
			{Rate: decimal.NewFromFloat(0.35)},
		},
		VATRate:      decimal.NewFromFloat(0.16),
		IDFRate:      decimal.NewFromFloat(0.0225),
		RailwayRate:  decimal.NewFromFloat(0.02),
		ExchangeRate: decimal.NewFromInt(129),
		ServiceFees: []ServiceFee{
			{Name: "Clearing Agent", AmountKES: decimal.NewFromInt(25000)},
			{Name: "Transport to Nairobi", AmountKES: decimal.NewFromInt(15000)},
			{Name: "Port Charges", AmountKES: decimal.NewFromInt(10000)},
			{Name: "Inspection (KEBS/PVOC)", AmountKES: decimal.NewFromInt(8000)},
			{Name: "Number Plates & Registration", AmountKES: decimal.NewFromInt(3000)},
		},
	}
}

// ExciseRateFor selects the excise duty rate for the given engine size.
// Bracket upper bounds are inclusive: exactly 1.5L falls in the 20% bracket.
func (r RateTable) ExciseRateFor(engineSizeLiters decimal.Decimal) decimal.Decimal {
	for _, b := range r.ExciseBrackets {
		if b.UpToLiters.IsZero() {
			return b.Rate
		}
		if engineSizeLiters.LessThanOrEqual(b.UpToLiters) {
			return b.Rate
		}
	}
	// Unreachable with a valid table; Validate enforces a top bracket.
	return decimal.Zero
}

// TotalServiceFeesKES sums the fixed fee line items.
func (r RateTable) TotalServiceFeesKES() decimal.Decimal {
	total := decimal.Zero
	for _, f := range r.ServiceFees {
		total = total.Add(f.AmountKES)
	}
	return total
}

// Validate checks that the table is usable: all rates positive, brackets in
// ascending order, and an open-ended top bracket present.
func (r RateTable) Validate() error {
	if !r.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", common.ErrInvalidConfig)
	}
	for _, rate := range []struct {
		value decimal.Decimal
		name  string
	}{
		{r.ImportDutyRate, "import duty rate"},
		{r.VATRate, "VAT rate"},
		{r.IDFRate, "IDF rate"},
		{r.RailwayRate, "railway levy rate"},
	} {
		if rate.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", common.ErrInvalidConfig, rate.name)
		}
	}
	if len(r.ExciseBrackets) == 0 {
		return fmt.Errorf("%w: no excise brackets defined", common.ErrInvalidConfig)
	}
	last := r.ExciseBrackets[len(r.ExciseBrackets)-1]
	if !last.UpToLiters.IsZero() {
		return fmt.Errorf("%w: excise brackets must end with an open-ended bracket", common.ErrInvalidConfig)
	}
	prev := decimal.Zero
	for _, b := range r.ExciseBrackets[:len(r.ExciseBrackets)-1] {
		if !b.UpToLiters.GreaterThan(prev) {
			return fmt.Errorf("%w: excise bracket bounds must be ascending", common.ErrInvalidConfig)
		}
		prev = b.UpToLiters
	}
	return nil
}
