package crsp

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

func (p *Parser) parseCSVFile(ctx context.Context, path string) ([]model.CRSPEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CRSP file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return p.ParseCSV(ctx, f)
}

// ParseCSV reads CRSP entries from CSV content. KRA exports are usually
// UTF-8 but older ones are Latin-1; invalid UTF-8 input is transparently
// re-decoded before parsing.
func (p *Parser) ParseCSV(ctx context.Context, reader io.Reader) ([]model.CRSPEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read CRSP file: %w", err)
	}

	if !utf8.Valid(content) {
		content = decodeLatin1(content)
	}

	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1 // ragged rows are common in KRA exports
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return rowsToEntries(rows)
}

// decodeLatin1 maps each byte to its equivalent code point. Latin-1 is a
// strict subset of Unicode, so this never fails.
func decodeLatin1(b []byte) []byte {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return []byte(string(runes))
}
