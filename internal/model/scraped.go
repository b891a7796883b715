package model

import (
	"github.com/shopspring/decimal"
)

// ScrapedVehicle holds whatever attributes could be extracted from a pasted
// listing URL. Zero values mean "not found"; callers fill the gaps manually.
type ScrapedVehicle struct {
	SourceURL        string
	Make             string
	Model            string
	Year             int
	EngineSizeLiters decimal.Decimal
	FOBValueUSD      decimal.Decimal
}

// IsEmpty reports whether the scrape found nothing usable at all.
func (s ScrapedVehicle) IsEmpty() bool {
	return s.Make == "" && s.Model == "" && s.Year == 0 &&
		!s.EngineSizeLiters.IsPositive() && !s.FOBValueUSD.IsPositive()
}

// ApplyTo prefills the unset fields of input with scraped values. Fields the
// user already provided are never overwritten.
func (s ScrapedVehicle) ApplyTo(input *VehicleInput) {
	if input.Make == "" {
		input.Make = s.Make
	}
	if input.Model == "" {
		input.Model = s.Model
	}
	if input.Year == 0 {
		input.Year = s.Year
	}
	if !input.EngineSizeLiters.IsPositive() && s.EngineSizeLiters.IsPositive() {
		input.EngineSizeLiters = s.EngineSizeLiters
	}
	if !input.FOBValueUSD.IsPositive() && s.FOBValueUSD.IsPositive() {
		input.FOBValueUSD = s.FOBValueUSD
	}
}
