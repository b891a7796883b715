package model

import (
	"github.com/shopspring/decimal"
)

// CostBreakdown is the itemized result of an import cost computation.
// All USD amounts are rounded to 2 decimal places and all KES amounts to
// whole shillings before totals are formed, so the displayed breakdown
// always sums exactly. Treated as immutable once computed.
type CostBreakdown struct {
	CIF          decimal.Decimal // USD
	ImportDuty   decimal.Decimal // USD
	ExciseDuty   decimal.Decimal // USD
	ExciseRate   decimal.Decimal // fraction, e.g. 0.25
	VAT          decimal.Decimal // USD
	IDF          decimal.Decimal // USD
	RailwayLevy  decimal.Decimal // USD
	ServiceFees  decimal.Decimal // KES
	TotalUSD     decimal.Decimal
	TotalKES     decimal.Decimal
	ExchangeRate decimal.Decimal // KES per USD used for this computation
}

// TotalTaxesUSD returns the sum of the statutory tax line items.
func (b CostBreakdown) TotalTaxesUSD() decimal.Decimal {
	return b.ImportDuty.Add(b.ExciseDuty).Add(b.VAT).Add(b.IDF).Add(b.RailwayLevy)
}

// Recommendation says whether importing beats buying from a local yard.
type Recommendation string

const (
	// RecommendImport means importing is estimated to be cheaper.
	RecommendImport Recommendation = "Import"
	// RecommendBuyLocal means the local yard price is equal or cheaper.
	RecommendBuyLocal Recommendation = "BuyLocal"
)

// LocalMarketComparison contrasts the landed import cost with an estimated
// local car yard price for the same vehicle.
type LocalMarketComparison struct {
	EstimatedLocalPriceKES decimal.Decimal
	ImportTotalKES         decimal.Decimal
	SavingsKES             decimal.Decimal
	Recommendation         Recommendation
}
