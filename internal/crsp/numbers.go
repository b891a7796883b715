package crsp

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var engineSizeRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// ExtractEngineSize pulls an engine displacement in liters out of free text
// such as "2.0", "3.0TFSI", "HARRIER 2.0 4WD" or "1800 CC". Values that look
// like cubic centimeters are converted to liters. Returns zero when nothing
// plausible is found.
func ExtractEngineSize(text string) decimal.Decimal {
	match := engineSizeRegex.FindString(text)
	if match == "" {
		return decimal.Zero
	}

	size, err := decimal.NewFromString(match)
	if err != nil || !size.IsPositive() {
		return decimal.Zero
	}

	// Displacements quoted in cc, e.g. "1800" or "2500cc"
	if size.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		size = size.Div(decimal.NewFromInt(1000))
	}

	// Anything outside the plausible passenger-vehicle range is noise, such
	// as a year or a model number leaking into the cell.
	if size.LessThan(decimal.NewFromFloat(0.5)) || size.GreaterThan(decimal.NewFromInt(8)) {
		return decimal.Zero
	}
	return size
}

var moneyCleaner = strings.NewReplacer(",", "", "KES", "", "Kes", "", "kes", "", " ", "")

// parseMoney reads a KES amount that may carry thousands separators or a
// currency label. Returns zero when the cell is not numeric.
func parseMoney(raw string) decimal.Decimal {
	cleaned := moneyCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil || value.IsNegative() {
		return decimal.Zero
	}
	return value
}
