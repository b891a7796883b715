package cli

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGroupThousands(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"16500.00", "16,500.00"},
		{"3867024", "3,867,024"},
		{"-4500", "-4,500"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, groupThousands(tt.in))
		})
	}
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$16,500.00", FormatUSD(decimal.NewFromInt(16500)))
	assert.Equal(t, "KES 3,867,024", FormatKES(decimal.NewFromInt(3867024)))
	assert.Equal(t, "25%", FormatPercent(decimal.NewFromFloat(0.25)))
	assert.Equal(t, "2.25%", FormatPercent(decimal.NewFromFloat(0.0225)))
}
