package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/rates"
)

const testYear = 2026

func testInput() model.VehicleInput {
	return model.VehicleInput{
		Make:             "TOYOTA",
		Model:            "Harrier",
		Year:             2022,
		EngineSizeLiters: decimal.NewFromFloat(2.0),
		FOBValueUSD:      decimal.NewFromInt(15000),
		FreightUSD:       decimal.NewFromInt(1200),
		InsuranceUSD:     decimal.NewFromInt(300),
	}
}

func TestComputeAt(t *testing.T) {
	table := rates.Default()

	t.Run("documented sample scenario", func(t *testing.T) {
		breakdown, err := ComputeAt(testInput(), table, testYear)
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(16500).Equal(breakdown.CIF), "CIF = %s", breakdown.CIF)
		assert.True(t, decimal.NewFromInt(4125).Equal(breakdown.ImportDuty), "import duty = %s", breakdown.ImportDuty)
		assert.True(t, decimal.NewFromFloat(0.25).Equal(breakdown.ExciseRate), "excise rate = %s", breakdown.ExciseRate)
		assert.True(t, decimal.NewFromInt(4125).Equal(breakdown.ExciseDuty), "excise duty = %s", breakdown.ExciseDuty)
		assert.True(t, decimal.NewFromInt(3960).Equal(breakdown.VAT), "VAT = %s", breakdown.VAT)
		assert.True(t, decimal.NewFromFloat(464.06).Equal(breakdown.IDF), "IDF = %s", breakdown.IDF)
		assert.True(t, decimal.NewFromInt(330).Equal(breakdown.RailwayLevy), "railway levy = %s", breakdown.RailwayLevy)
		assert.True(t, decimal.NewFromInt(61000).Equal(breakdown.ServiceFees), "service fees = %s", breakdown.ServiceFees)
		assert.True(t, decimal.NewFromFloat(29504.06).Equal(breakdown.TotalUSD), "total USD = %s", breakdown.TotalUSD)
		assert.True(t, decimal.NewFromInt(3867024).Equal(breakdown.TotalKES), "total KES = %s", breakdown.TotalKES)
	})

	t.Run("line items sum to totals exactly", func(t *testing.T) {
		breakdown, err := ComputeAt(testInput(), table, testYear)
		require.NoError(t, err)

		sum := breakdown.CIF.Add(breakdown.TotalTaxesUSD())
		assert.True(t, sum.Equal(breakdown.TotalUSD))

		kes := breakdown.TotalUSD.Mul(breakdown.ExchangeRate).Round(0).Add(breakdown.ServiceFees)
		assert.True(t, kes.Equal(breakdown.TotalKES))
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		first, err := ComputeAt(testInput(), table, testYear)
		require.NoError(t, err)
		second, err := ComputeAt(testInput(), table, testYear)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("total strictly increases with FOB value", func(t *testing.T) {
		input := testInput()
		prev, err := ComputeAt(input, table, testYear)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			input.FOBValueUSD = input.FOBValueUSD.Add(decimal.NewFromInt(100))
			next, err := ComputeAt(input, table, testYear)
			require.NoError(t, err)

			assert.True(t, next.TotalUSD.GreaterThan(prev.TotalUSD),
				"total USD %s should exceed %s", next.TotalUSD, prev.TotalUSD)
			assert.True(t, next.TotalKES.GreaterThan(prev.TotalKES),
				"total KES %s should exceed %s", next.TotalKES, prev.TotalKES)
			prev = next
		}
	})
}

func TestComputeAtExciseBrackets(t *testing.T) {
	table := rates.Default()

	tests := []struct {
		name       string
		engineSize string
		wantRate   string
	}{
		{"1.0L small engine", "1.0", "0.2"},
		{"1.5L exactly stays in lowest bracket", "1.5", "0.2"},
		{"just above 1.5L moves up", "1.50001", "0.25"},
		{"2.0L exactly", "2.0", "0.25"},
		{"2.5L exactly", "2.5", "0.3"},
		{"just above 2.5L is top bracket", "2.50001", "0.35"},
		{"4.5L large engine", "4.5", "0.35"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testInput()
			input.EngineSizeLiters = decimal.RequireFromString(tt.engineSize)

			breakdown, err := ComputeAt(input, table, testYear)
			require.NoError(t, err)

			want := decimal.RequireFromString(tt.wantRate)
			assert.True(t, want.Equal(breakdown.ExciseRate),
				"engine %s: got rate %s, want %s", tt.engineSize, breakdown.ExciseRate, want)
			assert.True(t, breakdown.CIF.Mul(want).Round(2).Equal(breakdown.ExciseDuty))
		})
	}
}

func TestComputeAtValidation(t *testing.T) {
	table := rates.Default()

	tests := []struct {
		name   string
		mutate func(*model.VehicleInput)
	}{
		{"vehicle nine years old", func(v *model.VehicleInput) { v.Year = testYear - 9 }},
		{"year in the future", func(v *model.VehicleInput) { v.Year = testYear + 1 }},
		{"zero engine size", func(v *model.VehicleInput) { v.EngineSizeLiters = decimal.Zero }},
		{"negative engine size", func(v *model.VehicleInput) { v.EngineSizeLiters = decimal.NewFromFloat(-1.8) }},
		{"negative FOB value", func(v *model.VehicleInput) { v.FOBValueUSD = decimal.NewFromInt(-1) }},
		{"negative freight", func(v *model.VehicleInput) { v.FreightUSD = decimal.NewFromInt(-50) }},
		{"negative insurance", func(v *model.VehicleInput) { v.InsuranceUSD = decimal.NewFromInt(-50) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := testInput()
			tt.mutate(&input)

			_, err := ComputeAt(input, table, testYear)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	t.Run("eight years old is still importable", func(t *testing.T) {
		input := testInput()
		input.Year = testYear - 8

		_, err := ComputeAt(input, table, testYear)
		require.NoError(t, err)
	})
}

func TestCompareWithLocalMarket(t *testing.T) {
	t.Run("import recommended when cheaper", func(t *testing.T) {
		cmp := CompareWithLocalMarket(decimal.NewFromInt(3000000), decimal.NewFromInt(3500000))
		assert.Equal(t, model.RecommendImport, cmp.Recommendation)
		assert.True(t, decimal.NewFromInt(500000).Equal(cmp.SavingsKES))
	})

	t.Run("buy local when import costs more", func(t *testing.T) {
		cmp := CompareWithLocalMarket(decimal.NewFromInt(4000000), decimal.NewFromInt(3500000))
		assert.Equal(t, model.RecommendBuyLocal, cmp.Recommendation)
		assert.True(t, cmp.SavingsKES.IsNegative())
	})

	t.Run("tie favors buying locally", func(t *testing.T) {
		cmp := CompareWithLocalMarket(decimal.NewFromInt(3500000), decimal.NewFromInt(3500000))
		assert.Equal(t, model.RecommendBuyLocal, cmp.Recommendation)
		assert.True(t, cmp.SavingsKES.IsZero())
	})

	t.Run("missing local price falls back to markup estimate", func(t *testing.T) {
		total := decimal.NewFromInt(3000000)
		cmp := CompareWithLocalMarket(total, decimal.Zero)
		assert.True(t, decimal.NewFromInt(3900000).Equal(cmp.EstimatedLocalPriceKES),
			"estimated local price = %s", cmp.EstimatedLocalPriceKES)
		assert.Equal(t, model.RecommendImport, cmp.Recommendation)
	})
}

func TestEstimateFOBValueAt(t *testing.T) {
	tests := []struct {
		name     string
		make     string
		year     int
		expected string
	}{
		{"current year toyota keeps base value", "TOYOTA", testYear, "25000"},
		{"two year old toyota depreciates", "Toyota", testYear - 2, "18062.5"},
		{"unknown make uses default base", "PEUGEOT", testYear, "20000"},
		{"old vehicle clamps to minimum", "MAZDA", testYear - 20, "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateFOBValueAt(tt.make, tt.year, testYear)
			want := decimal.RequireFromString(tt.expected)
			assert.True(t, want.Equal(got), "got %s, want %s", got, want)
		})
	}
}
