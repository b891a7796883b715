package engine

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Simplified FOB base values by make, in USD, for a current-year vehicle.
var baseValues = map[string]int64{
	"TOYOTA":     25000,
	"NISSAN":     20000,
	"HONDA":      22000,
	"MAZDA":      18000,
	"SUBARU":     23000,
	"AUDI":       35000,
	"BMW":        40000,
	"MERCEDES":   45000,
	"VOLKSWAGEN": 28000,
}

var (
	defaultBaseValue = decimal.NewFromInt(20000)
	minimumValue     = decimal.NewFromInt(5000)
	annualRetention  = decimal.NewFromFloat(0.85) // 15% depreciation per year
)

// EstimateFOBValue approximates a vehicle's FOB value from its make and
// year using straight-line age depreciation. Actual market values vary;
// this only seeds the form when the user has no listing price.
func EstimateFOBValue(makeName string, year int) decimal.Decimal {
	return EstimateFOBValueAt(makeName, year, time.Now().Year())
}

// EstimateFOBValueAt is the deterministic core of EstimateFOBValue.
func EstimateFOBValueAt(makeName string, year, currentYear int) decimal.Decimal {
	base := defaultBaseValue
	if v, ok := baseValues[strings.ToUpper(strings.TrimSpace(makeName))]; ok {
		base = decimal.NewFromInt(v)
	}

	age := currentYear - year
	if age < 0 {
		age = 0
	}

	estimated := base.Mul(annualRetention.Pow(decimal.NewFromInt(int64(age)))).Round(2)
	if estimated.LessThan(minimumValue) {
		return minimumValue
	}
	return estimated
}
