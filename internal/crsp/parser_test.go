package crsp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
)

func TestParseCSV(t *testing.T) {
	ctx := context.Background()
	parser := NewParser()

	t.Run("normalizes messy KRA headers", func(t *testing.T) {
		input := `" MAKE ","MODEL","MODEL  NUMBER","ENGINE CAPACITY","CRSP VALUE"
Toyota,Harrier 2.0,ZSU60,2000,4500000
nissan,X-Trail,,"1,997",3800000
`
		entries, err := parser.ParseCSV(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "TOYOTA", entries[0].Make)
		assert.Equal(t, "HARRIER 2.0", entries[0].Model)
		assert.Equal(t, "ZSU60", entries[0].ModelNumber)
		assert.True(t, decimal.NewFromInt(2).Equal(entries[0].EngineSizeLiters),
			"engine = %s", entries[0].EngineSizeLiters)
		assert.True(t, decimal.NewFromInt(4500000).Equal(entries[0].CRSPValueKES))

		assert.Equal(t, "NISSAN", entries[1].Make)
		assert.Equal(t, "X-TRAIL", entries[1].Model)
	})

	t.Run("missing model column is an error", func(t *testing.T) {
		input := "MAKE,PRICE\nToyota,4500000\n"
		_, err := parser.ParseCSV(ctx, strings.NewReader(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMissingColumns)
	})

	t.Run("model number column does not satisfy model", func(t *testing.T) {
		input := "MAKE,MODEL NUMBER\nToyota,ZSU60\n"
		_, err := parser.ParseCSV(ctx, strings.NewReader(input))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrMissingColumns)
	})

	t.Run("rows without make or model are skipped", func(t *testing.T) {
		input := "MAKE,MODEL\nToyota,Harrier\n,Orphan\nMazda,\n"
		entries, err := parser.ParseCSV(ctx, strings.NewReader(input))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("engine size falls back to model string", func(t *testing.T) {
		input := "MAKE,MODEL\nToyota,Harrier 2.4\n"
		entries, err := parser.ParseCSV(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, decimal.NewFromFloat(2.4).Equal(entries[0].EngineSizeLiters))
	})

	t.Run("latin-1 content is re-decoded", func(t *testing.T) {
		// "Citroën" with a Latin-1 0xEB byte, invalid as UTF-8
		input := append([]byte("MAKE,MODEL\nCitro"), 0xEB)
		input = append(input, []byte("n,C3\n")...)

		entries, err := parser.ParseCSV(ctx, strings.NewReader(string(input)))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "CITROËN", entries[0].Make)
	})
}

func TestParseFile(t *testing.T) {
	ctx := context.Background()

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := NewParser().ParseFile(ctx, "crsp.pdf")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrUnsupportedFile)
	})

	t.Run("xlsx workbook", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crsp.xlsx")
		writeTestWorkbook(t, path, "Sheet1")

		entries, err := NewParser().ParseFile(ctx, path)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "TOYOTA", entries[0].Make)
		assert.Equal(t, "PRADO", entries[1].Model)
	})

	t.Run("xlsx named sheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "crsp.xlsx")
		writeTestWorkbook(t, path, "CRSP 2026")

		parser := NewParser()
		parser.Sheet = "CRSP 2026"
		entries, err := parser.ParseFile(ctx, path)
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		parser.Sheet = "No Such Sheet"
		_, err = parser.ParseFile(ctx, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func writeTestWorkbook(t *testing.T, path, sheet string) {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}

	rows := [][]any{
		{"MAKE", "MODEL", "ENGINE CAPACITY"},
		{"Toyota", "Harrier", "2000"},
		{"Toyota", "Prado", "2800"},
	}
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}
	require.NoError(t, f.SaveAs(path))
}
