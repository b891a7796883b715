// Package export serializes calculation sessions to flat CSV summaries and
// reads them back. The written file reconstructs the exact breakdown it came
// from, so summaries can be archived and re-imported without drift.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

// Header is the fixed column order of a summary CSV. Readers depend on it.
var Header = []string{
	"make",
	"model",
	"year",
	"engine_size_liters",
	"fob_usd",
	"freight_usd",
	"insurance_usd",
	"cif_usd",
	"import_duty_usd",
	"excise_duty_usd",
	"excise_rate",
	"vat_usd",
	"idf_usd",
	"railway_levy_usd",
	"service_fees_kes",
	"total_usd",
	"total_kes",
	"exchange_rate",
}

// WriteSummary writes the header and one row per record.
func WriteSummary(w io.Writer, records ...model.CalculationRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Input.Make,
			record.Input.Model,
			strconv.Itoa(record.Input.Year),
			record.Input.EngineSizeLiters.String(),
			record.Input.FOBValueUSD.String(),
			record.Input.FreightUSD.String(),
			record.Input.InsuranceUSD.String(),
			record.Breakdown.CIF.String(),
			record.Breakdown.ImportDuty.String(),
			record.Breakdown.ExciseDuty.String(),
			record.Breakdown.ExciseRate.String(),
			record.Breakdown.VAT.String(),
			record.Breakdown.IDF.String(),
			record.Breakdown.RailwayLevy.String(),
			record.Breakdown.ServiceFees.String(),
			record.Breakdown.TotalUSD.String(),
			record.Breakdown.TotalKES.String(),
			record.Breakdown.ExchangeRate.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush summary: %w", err)
	}
	return nil
}

// WriteSummaryFile writes records to a file, creating or truncating it.
func WriteSummaryFile(path string, records ...model.CalculationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}

	if err := WriteSummary(f, records...); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadSummary parses a summary CSV back into calculation records.
func ReadSummary(r io.Reader) ([]model.CalculationRecord, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary header: %w", err)
	}
	if len(header) != len(Header) {
		return nil, fmt.Errorf("unexpected summary header: got %d columns, want %d", len(header), len(Header))
	}
	for i, col := range header {
		if col != Header[i] {
			return nil, fmt.Errorf("unexpected summary column %d: got %q, want %q", i, col, Header[i])
		}
	}

	var records []model.CalculationRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read summary row: %w", err)
		}

		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("summary line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// ReadSummaryFile parses a summary CSV file.
func ReadSummaryFile(path string) ([]model.CalculationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open summary file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadSummary(f)
}

func parseRow(row []string) (model.CalculationRecord, error) {
	if len(row) != len(Header) {
		return model.CalculationRecord{}, fmt.Errorf("got %d columns, want %d", len(row), len(Header))
	}

	var record model.CalculationRecord
	record.Input.Make = row[0]
	record.Input.Model = row[1]

	year, err := strconv.Atoi(row[2])
	if err != nil {
		return model.CalculationRecord{}, fmt.Errorf("bad year %q: %w", row[2], err)
	}
	record.Input.Year = year

	fields := []struct {
		target *decimal.Decimal
		index  int
	}{
		{&record.Input.EngineSizeLiters, 3},
		{&record.Input.FOBValueUSD, 4},
		{&record.Input.FreightUSD, 5},
		{&record.Input.InsuranceUSD, 6},
		{&record.Breakdown.CIF, 7},
		{&record.Breakdown.ImportDuty, 8},
		{&record.Breakdown.ExciseDuty, 9},
		{&record.Breakdown.ExciseRate, 10},
		{&record.Breakdown.VAT, 11},
		{&record.Breakdown.IDF, 12},
		{&record.Breakdown.RailwayLevy, 13},
		{&record.Breakdown.ServiceFees, 14},
		{&record.Breakdown.TotalUSD, 15},
		{&record.Breakdown.TotalKES, 16},
		{&record.Breakdown.ExchangeRate, 17},
	}
	for _, f := range fields {
		value, err := decimal.NewFromString(row[f.index])
		if err != nil {
			return model.CalculationRecord{}, fmt.Errorf("bad %s %q: %w", Header[f.index], row[f.index], err)
		}
		*f.target = value
	}
	return record, nil
}
