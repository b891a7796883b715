// Package engine implements the core cost engine: a pure transform from
// vehicle inputs and a rate table to an itemized import cost breakdown.
package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/rates"
)

// Compute validates the input against the current year and produces the
// full cost breakdown. It is a thin wrapper over ComputeAt.
func Compute(input model.VehicleInput, table rates.RateTable) (model.CostBreakdown, error) {
	return ComputeAt(input, table, time.Now().Year())
}

// ComputeAt is the deterministic core: identical arguments always yield an
// identical breakdown. It performs no I/O and fails only on validation.
//
// Every USD line item is rounded to 2 decimal places and every KES amount
// to whole shillings before totals are summed, so the totals always match
// the displayed line items exactly.
func ComputeAt(input model.VehicleInput, table rates.RateTable, currentYear int) (model.CostBreakdown, error) {
	if err := input.Validate(currentYear); err != nil {
		return model.CostBreakdown{}, err
	}

	cif := input.FOBValueUSD.Add(input.FreightUSD).Add(input.InsuranceUSD).Round(2)
	importDuty := cif.Mul(table.ImportDutyRate).Round(2)

	exciseRate := table.ExciseRateFor(input.EngineSizeLiters)
	exciseDuty := cif.Mul(exciseRate).Round(2)

	vat := cif.Add(importDuty).Add(exciseDuty).Mul(table.VATRate).Round(2)
	idf := cif.Add(importDuty).Mul(table.IDFRate).Round(2)
	railwayLevy := cif.Mul(table.RailwayRate).Round(2)

	serviceFees := table.TotalServiceFeesKES().Round(0)

	totalUSD := cif.Add(importDuty).Add(exciseDuty).Add(vat).Add(idf).Add(railwayLevy)
	// Service fees are quoted directly in KES and never pass through the
	// exchange rate.
	totalKES := totalUSD.Mul(table.ExchangeRate).Round(0).Add(serviceFees)

	return model.CostBreakdown{
		CIF:          cif,
		ImportDuty:   importDuty,
		ExciseDuty:   exciseDuty,
		ExciseRate:   exciseRate,
		VAT:          vat,
		IDF:          idf,
		RailwayLevy:  railwayLevy,
		ServiceFees:  serviceFees,
		TotalUSD:     totalUSD,
		TotalKES:     totalKES,
		ExchangeRate: table.ExchangeRate,
	}, nil
}

// localMarkup is the typical car yard markup over landed import cost,
// used when no real local listing price is available.
var localMarkup = decimal.NewFromFloat(1.30)

// EstimateLocalPrice approximates what a local car yard would charge for a
// vehicle whose landed import cost is importTotalKES.
func EstimateLocalPrice(importTotalKES decimal.Decimal) decimal.Decimal {
	return importTotalKES.Mul(localMarkup).Round(0)
}

// CompareWithLocalMarket contrasts the landed import cost with a local
// market price. When localPriceKES is zero (no listing found), the price is
// estimated from the import total. Importing is recommended only when it is
// strictly cheaper; a tie favors buying locally.
func CompareWithLocalMarket(importTotalKES, localPriceKES decimal.Decimal) model.LocalMarketComparison {
	if !localPriceKES.IsPositive() {
		localPriceKES = EstimateLocalPrice(importTotalKES)
	}

	recommendation := model.RecommendBuyLocal
	if importTotalKES.LessThan(localPriceKES) {
		recommendation = model.RecommendImport
	}

	return model.LocalMarketComparison{
		EstimatedLocalPriceKES: localPriceKES,
		ImportTotalKES:         importTotalKES,
		SavingsKES:             localPriceKES.Sub(importTotalKES),
		Recommendation:         recommendation,
	}
}
