// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
)

// MaxImportAge is the oldest a vehicle may be, in years, and still be
// eligible for import into Kenya.
const MaxImportAge = 8

// VehicleInput holds everything needed to compute an import cost estimate.
type VehicleInput struct {
	Make             string
	Model            string
	Year             int
	EngineSizeLiters decimal.Decimal
	FOBValueUSD      decimal.Decimal
	FreightUSD       decimal.Decimal
	InsuranceUSD     decimal.Decimal
}

// Age returns the vehicle's age in years relative to the given year.
func (v VehicleInput) Age(currentYear int) int {
	return currentYear - v.Year
}

// Validate checks the input against the import eligibility rules:
// the vehicle must be at most MaxImportAge years old, the engine size
// must be positive, and no monetary field may be negative.
func (v VehicleInput) Validate(currentYear int) error {
	if v.Year > currentYear {
		return fmt.Errorf("%w: year %d is in the future", common.ErrValidation, v.Year)
	}
	if v.Age(currentYear) > MaxImportAge {
		return fmt.Errorf("%w: vehicles over %d years old cannot be imported into Kenya (year %d)",
			common.ErrValidation, MaxImportAge, v.Year)
	}
	if !v.EngineSizeLiters.IsPositive() {
		return fmt.Errorf("%w: engine size must be greater than zero", common.ErrValidation)
	}
	for _, f := range []struct {
		value decimal.Decimal
		name  string
	}{
		{v.FOBValueUSD, "FOB value"},
		{v.FreightUSD, "freight cost"},
		{v.InsuranceUSD, "insurance cost"},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", common.ErrValidation, f.name)
		}
	}
	return nil
}

// ValidateNow is a convenience wrapper around Validate using the wall clock.
func (v VehicleInput) ValidateNow() error {
	return v.Validate(time.Now().Year())
}

// Description returns a short human-readable label, e.g. "TOYOTA Harrier (2021)".
func (v VehicleInput) Description() string {
	return fmt.Sprintf("%s %s (%d)", v.Make, v.Model, v.Year)
}
