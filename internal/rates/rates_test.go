package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
)

func TestDefault(t *testing.T) {
	table := Default()

	require.NoError(t, table.Validate())
	assert.True(t, decimal.NewFromFloat(0.25).Equal(table.ImportDutyRate))
	assert.True(t, decimal.NewFromFloat(0.16).Equal(table.VATRate))
	assert.True(t, decimal.NewFromFloat(0.0225).Equal(table.IDFRate))
	assert.True(t, decimal.NewFromFloat(0.02).Equal(table.RailwayRate))
	assert.True(t, decimal.NewFromInt(129).Equal(table.ExchangeRate))
	assert.Len(t, table.ExciseBrackets, 4)
	assert.Len(t, table.ServiceFees, 5)
}

func TestExciseRateFor(t *testing.T) {
	table := Default()

	tests := []struct {
		engine string
		want   string
	}{
		{"0.66", "0.2"},
		{"1.5", "0.2"},
		{"1.6", "0.25"},
		{"2.0", "0.25"},
		{"2.4", "0.3"},
		{"2.5", "0.3"},
		{"2.6", "0.35"},
		{"5.7", "0.35"},
	}

	for _, tt := range tests {
		t.Run(tt.engine+"L", func(t *testing.T) {
			got := table.ExciseRateFor(decimal.RequireFromString(tt.engine))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got),
				"engine %sL: got %s, want %s", tt.engine, got, tt.want)
		})
	}
}

func TestTotalServiceFeesKES(t *testing.T) {
	total := Default().TotalServiceFeesKES()
	assert.True(t, decimal.NewFromInt(61000).Equal(total), "got %s", total)
}

func TestValidate(t *testing.T) {
	t.Run("missing top bracket", func(t *testing.T) {
		table := Default()
		table.ExciseBrackets = table.ExciseBrackets[:2]
		err := table.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("non-ascending brackets", func(t *testing.T) {
		table := Default()
		table.ExciseBrackets[0].UpToLiters = decimal.NewFromFloat(2.2)
		err := table.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})

	t.Run("zero exchange rate", func(t *testing.T) {
		table := Default()
		table.ExchangeRate = decimal.Zero
		err := table.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestLoadOverrides(t *testing.T) {
	t.Run("defaults when nothing configured", func(t *testing.T) {
		viper.Reset()
		table, err := Load()
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(129).Equal(table.ExchangeRate))
	})

	t.Run("exchange rate and fee overrides", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("rates.exchange_rate", "135.50")
		viper.Set("fees.clearing_agent", "30000")

		table, err := Load()
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("135.50").Equal(table.ExchangeRate))
		assert.True(t, decimal.NewFromInt(66000).Equal(table.TotalServiceFeesKES()))
	})

	t.Run("invalid override is rejected", func(t *testing.T) {
		viper.Reset()
		defer viper.Reset()
		viper.Set("rates.exchange_rate", "not-a-number")

		_, err := Load()
		require.Error(t, err)
	})
}
