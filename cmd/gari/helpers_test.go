package main

import (
	"testing"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimalFlag(t *testing.T) {
	t.Run("empty value is zero", func(t *testing.T) {
		d, err := parseDecimalFlag("fob", "")
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("parses decimal values", func(t *testing.T) {
		d, err := parseDecimalFlag("engine", "2.0")
		require.NoError(t, err)
		assert.True(t, d.Equal(decimal.NewFromInt(2)))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := parseDecimalFlag("fob", "fifteen grand")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--fob")
	})
}

func TestRenderCRSPEntry(t *testing.T) {
	entry := model.CRSPEntry{
		Make:             "TOYOTA",
		Model:            "HARRIER",
		ModelNumber:      "ASU60",
		EngineSizeLiters: decimal.NewFromFloat(2.0),
		CRSPValueKES:     decimal.NewFromInt(4500000),
	}

	line := renderCRSPEntry(entry)
	assert.Contains(t, line, "TOYOTA HARRIER")
	assert.Contains(t, line, "[ASU60]")
	assert.Contains(t, line, "2L")
	assert.Contains(t, line, "KES 4,500,000")
}

func TestRenderCRSPEntryMinimal(t *testing.T) {
	entry := model.CRSPEntry{Make: "MAZDA", Model: "DEMIO"}

	line := renderCRSPEntry(entry)
	assert.Equal(t, "  MAZDA DEMIO", line)
}
