// Package crsp ingests KRA CRSP (Customs Reference Standard Price) files.
// The files arrive as CSV or XLSX exports with messy, inconsistent headers;
// parsing normalizes them into model.CRSPEntry rows.
package crsp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

// Parser reads CRSP reference files.
type Parser struct {
	// Sheet selects a worksheet by name for XLSX files. Empty means the
	// first sheet.
	Sheet string
}

// NewParser creates a new CRSP file parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads a CRSP file, dispatching on the file extension.
func (p *Parser) ParseFile(ctx context.Context, path string) ([]model.CRSPEntry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return p.parseCSVFile(ctx, path)
	case ".xlsx", ".xls":
		return p.parseXLSXFile(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s (want .csv, .xlsx or .xls)", common.ErrUnsupportedFile, filepath.Ext(path))
	}
}

// columnLayout maps the semantic columns onto their indexes in the file.
// Make and Model are mandatory; everything else is -1 when absent.
type columnLayout struct {
	make        int
	model       int
	modelNumber int
	engineSize  int
	crspValue   int
}

// normalizeHeader strips quotes, trims, collapses internal whitespace and
// uppercases a raw header cell. KRA exports are inconsistent about all four.
func normalizeHeader(raw string) string {
	cleaned := strings.ReplaceAll(raw, `"`, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return strings.ToUpper(cleaned)
}

// detectColumns finds the semantic columns in a normalized header row.
// A column containing "MODEL NUMBER" must not be mistaken for the model
// column itself.
func detectColumns(header []string) (columnLayout, error) {
	layout := columnLayout{make: -1, model: -1, modelNumber: -1, engineSize: -1, crspValue: -1}

	for i, raw := range header {
		col := normalizeHeader(raw)
		switch {
		case col == "MAKE" || (layout.make == -1 && strings.Contains(col, "MAKE")):
			layout.make = i
		case strings.Contains(col, "MODEL") && strings.Contains(col, "NUMBER"):
			layout.modelNumber = i
		case col == "MODEL" || (layout.model == -1 && strings.Contains(col, "MODEL")):
			layout.model = i
		case strings.Contains(col, "ENGINE") || strings.Contains(col, "CAPACITY") || col == "CC":
			if layout.engineSize == -1 {
				layout.engineSize = i
			}
		case strings.Contains(col, "CRSP") || strings.Contains(col, "PRICE") || strings.Contains(col, "VALUE"):
			if layout.crspValue == -1 {
				layout.crspValue = i
			}
		}
	}

	if layout.make == -1 || layout.model == -1 {
		return layout, fmt.Errorf("%w: file must contain MAKE and MODEL columns, found: %s",
			common.ErrMissingColumns, strings.Join(normalizedHeaders(header), ", "))
	}
	return layout, nil
}

func normalizedHeaders(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = normalizeHeader(h)
	}
	return out
}

// rowsToEntries converts raw sheet rows (header first) into CRSP entries.
// Rows without both make and model are skipped, not fatal.
func rowsToEntries(rows [][]string) ([]model.CRSPEntry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: file is empty", common.ErrMissingColumns)
	}

	layout, err := detectColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var entries []model.CRSPEntry
	skipped := 0
	for _, row := range rows[1:] {
		entry, ok := rowToEntry(row, layout)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}

	if skipped > 0 {
		slog.Warn("skipped CRSP rows without make/model", "skipped", skipped)
	}
	slog.Info("parsed CRSP file rows", "entries", len(entries), "skipped", skipped)
	return entries, nil
}

func rowToEntry(row []string, layout columnLayout) (model.CRSPEntry, bool) {
	entry := model.CRSPEntry{
		Make:  strings.ToUpper(strings.TrimSpace(cell(row, layout.make))),
		Model: strings.ToUpper(strings.TrimSpace(cell(row, layout.model))),
	}
	if entry.Make == "" || entry.Model == "" {
		return model.CRSPEntry{}, false
	}

	entry.ModelNumber = strings.TrimSpace(cell(row, layout.modelNumber))

	if raw := cell(row, layout.engineSize); raw != "" {
		entry.EngineSizeLiters = ExtractEngineSize(raw)
	}
	if !entry.HasEngineSize() {
		// Fall back to whatever the model string carries, e.g. "HARRIER 2.0".
		entry.EngineSizeLiters = ExtractEngineSize(entry.Model)
	}

	if raw := cell(row, layout.crspValue); raw != "" {
		entry.CRSPValueKES = parseMoney(raw)
	}
	return entry, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
