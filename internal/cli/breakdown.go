package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

// FormatUSD renders a USD amount with thousands separators, e.g. "$16,500.00".
func FormatUSD(amount decimal.Decimal) string {
	return "$" + groupThousands(amount.StringFixed(2))
}

// FormatKES renders a whole-shilling amount, e.g. "KES 3,867,024".
func FormatKES(amount decimal.Decimal) string {
	return "KES " + groupThousands(amount.StringFixed(0))
}

// FormatPercent renders a fractional rate as a percentage, e.g. "25%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")

	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	if hasFrac {
		out += "." + frac
	}
	return out
}

// RenderBreakdown renders the full cost breakdown as a styled box.
func RenderBreakdown(input model.VehicleInput, breakdown model.CostBreakdown) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %sL engine\n\n",
		BoldStyle.Render(input.Description()), input.EngineSizeLiters)

	rows := []struct {
		label  string
		amount string
		note   string
	}{
		{"FOB Value", FormatUSD(input.FOBValueUSD), "price at origin"},
		{"Freight", FormatUSD(input.FreightUSD), "shipping to Mombasa"},
		{"Insurance", FormatUSD(input.InsuranceUSD), ""},
		{"CIF Value", FormatUSD(breakdown.CIF), "basis for all taxes"},
		{"Import Duty", FormatUSD(breakdown.ImportDuty), "25% of CIF"},
		{"Excise Duty", FormatUSD(breakdown.ExciseDuty), FormatPercent(breakdown.ExciseRate) + " of CIF by engine size"},
		{"VAT", FormatUSD(breakdown.VAT), "16% of (CIF + duties)"},
		{"IDF", FormatUSD(breakdown.IDF), "2.25% of (CIF + import duty)"},
		{"Railway Levy", FormatUSD(breakdown.RailwayLevy), "2% of CIF"},
		{"Service Fees", FormatKES(breakdown.ServiceFees), "clearing, transport, port, inspection, plates"},
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "%-14s %14s", row.label, row.amount)
		if row.note != "" {
			b.WriteString("  " + SubtleStyle.Render(row.note))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	fmt.Fprintf(&b, "%-14s %14s\n", BoldStyle.Render("Total (USD)"), FormatUSD(breakdown.TotalUSD))
	fmt.Fprintf(&b, "%-14s %14s  %s\n", BoldStyle.Render("Total (KES)"), FormatKES(breakdown.TotalKES),
		SubtleStyle.Render(fmt.Sprintf("at %s KES/USD", breakdown.ExchangeRate)))

	return RenderBox(ShipIcon+" Import Cost Breakdown", strings.TrimRight(b.String(), "\n"))
}

// RenderComparison renders the import-vs-local recommendation.
func RenderComparison(cmp model.LocalMarketComparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-24s %s\n", "Import total:", FormatKES(cmp.ImportTotalKES))
	fmt.Fprintf(&b, "%-24s %s\n\n", "Est. local yard price:", FormatKES(cmp.EstimatedLocalPriceKES))

	switch cmp.Recommendation {
	case model.RecommendImport:
		b.WriteString(FormatSuccess(fmt.Sprintf("Recommendation: IMPORT - potential savings of %s", FormatKES(cmp.SavingsKES))))
	case model.RecommendBuyLocal:
		b.WriteString(FormatWarning("Recommendation: BUY LOCAL - importing saves nothing here"))
	}

	return RenderBox(MoneyIcon+" Import or Buy Locally?", b.String())
}
