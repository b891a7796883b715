package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/engine"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/rates"
)

func testCalculationRecord(t *testing.T) *model.CalculationRecord {
	t.Helper()

	input := model.VehicleInput{
		Make:             "TOYOTA",
		Model:            "Harrier",
		Year:             2022,
		EngineSizeLiters: decimal.NewFromFloat(2.0),
		FOBValueUSD:      decimal.NewFromInt(15000),
		FreightUSD:       decimal.NewFromInt(1200),
		InsuranceUSD:     decimal.NewFromInt(300),
	}
	breakdown, err := engine.ComputeAt(input, rates.Default(), 2026)
	require.NoError(t, err)

	return &model.CalculationRecord{Input: input, Breakdown: breakdown}
}

func TestSaveCalculation(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and hash", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		record := testCalculationRecord(t)
		require.NoError(t, store.SaveCalculation(ctx, record))
		assert.NotZero(t, record.ID)
		assert.NotEmpty(t, record.Hash)
	})

	t.Run("duplicate inputs are rejected", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		require.NoError(t, store.SaveCalculation(ctx, testCalculationRecord(t)))

		err := store.SaveCalculation(ctx, testCalculationRecord(t))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrDuplicateEntry)
	})

	t.Run("rejects record without vehicle identity", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		record := testCalculationRecord(t)
		record.Input.Make = ""
		err := store.SaveCalculation(ctx, record)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRecord)
	})
}

func TestGetCalculation(t *testing.T) {
	ctx := context.Background()

	t.Run("round-trips every monetary field exactly", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		record := testCalculationRecord(t)
		require.NoError(t, store.SaveCalculation(ctx, record))

		got, err := store.GetCalculation(ctx, record.ID)
		require.NoError(t, err)

		assert.Equal(t, record.Input.Make, got.Input.Make)
		assert.Equal(t, record.Input.Year, got.Input.Year)
		assert.True(t, record.Breakdown.CIF.Equal(got.Breakdown.CIF))
		assert.True(t, record.Breakdown.IDF.Equal(got.Breakdown.IDF))
		assert.True(t, record.Breakdown.ExciseRate.Equal(got.Breakdown.ExciseRate))
		assert.True(t, record.Breakdown.TotalUSD.Equal(got.Breakdown.TotalUSD))
		assert.True(t, record.Breakdown.TotalKES.Equal(got.Breakdown.TotalKES))
		assert.False(t, got.CreatedAt.IsZero())
	})

	t.Run("missing id reports not found", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		_, err := store.GetCalculation(ctx, 999)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestListCalculations(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	first := testCalculationRecord(t)
	require.NoError(t, store.SaveCalculation(ctx, first))

	second := testCalculationRecord(t)
	second.Input.FOBValueUSD = decimal.NewFromInt(18000)
	var err error
	second.Breakdown, err = engine.ComputeAt(second.Input, rates.Default(), 2026)
	require.NoError(t, err)
	require.NoError(t, store.SaveCalculation(ctx, second))

	t.Run("newest first", func(t *testing.T) {
		records, err := store.ListCalculations(ctx, 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, second.ID, records[0].ID)
		assert.Equal(t, first.ID, records[1].ID)
	})

	t.Run("limit applies", func(t *testing.T) {
		records, err := store.ListCalculations(ctx, 1)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, second.ID, records[0].ID)
	})
}
