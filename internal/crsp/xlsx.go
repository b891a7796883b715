package crsp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

func (p *Parser) parseXLSXFile(ctx context.Context, path string) ([]model.CRSPEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close workbook", "error", closeErr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrMissingColumns)
	}

	sheet := p.Sheet
	if sheet == "" {
		sheet = sheets[0]
	} else if !containsSheet(sheets, sheet) {
		return nil, fmt.Errorf("%w: sheet %q (workbook has: %v)", common.ErrNotFound, sheet, sheets)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	slog.Debug("reading workbook sheet", "sheet", sheet, "rows", len(rows))
	return rowsToEntries(rows)
}

func containsSheet(sheets []string, want string) bool {
	for _, s := range sheets {
		if s == want {
			return true
		}
	}
	return false
}
