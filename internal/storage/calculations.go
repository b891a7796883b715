package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/common"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

// SaveCalculation persists a calculation session. Saving the exact same
// inputs twice is treated as a duplicate and reported as such.
func (s *SQLiteStorage) SaveCalculation(ctx context.Context, record *model.CalculationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateCalculationRecord(record); err != nil {
		return err
	}

	if record.Hash == "" {
		record.Hash = record.GenerateHash()
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (
			hash, make, model, year, engine_size_liters,
			fob_usd, freight_usd, insurance_usd,
			cif_usd, import_duty_usd, excise_duty_usd, excise_rate,
			vat_usd, idf_usd, railway_levy_usd, service_fees_kes,
			total_usd, total_kes, exchange_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Hash,
		record.Input.Make,
		record.Input.Model,
		record.Input.Year,
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
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: identical calculation already saved", common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save calculation: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get calculation ID: %w", err)
	}
	record.ID = id

	slog.Debug("saved calculation", "id", id, "vehicle", record.Input.Description())
	return nil
}

// GetCalculation fetches a single saved session by ID.
func (s *SQLiteStorage) GetCalculation(ctx context.Context, id int64) (*model.CalculationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, calculationColumns+" WHERE id = ?", id)
	record, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: calculation %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListCalculations returns saved sessions, newest first.
func (s *SQLiteStorage) ListCalculations(ctx context.Context, limit int) ([]model.CalculationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := calculationColumns + " ORDER BY created_at DESC, id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.CalculationRecord
	for rows.Next() {
		record, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculations: %w", err)
	}
	return records, nil
}

const calculationColumns = `
	SELECT id, hash, make, model, year, engine_size_liters,
	       fob_usd, freight_usd, insurance_usd,
	       cif_usd, import_duty_usd, excise_duty_usd, excise_rate,
	       vat_usd, idf_usd, railway_levy_usd, service_fees_kes,
	       total_usd, total_kes, exchange_rate, created_at
	FROM calculations`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row rowScanner) (*model.CalculationRecord, error) {
	var record model.CalculationRecord
	fields := []struct {
		target *decimal.Decimal
		name   string
	}{
		{&record.Input.EngineSizeLiters, "engine_size_liters"},
		{&record.Input.FOBValueUSD, "fob_usd"},
		{&record.Input.FreightUSD, "freight_usd"},
		{&record.Input.InsuranceUSD, "insurance_usd"},
		{&record.Breakdown.CIF, "cif_usd"},
		{&record.Breakdown.ImportDuty, "import_duty_usd"},
		{&record.Breakdown.ExciseDuty, "excise_duty_usd"},
		{&record.Breakdown.ExciseRate, "excise_rate"},
		{&record.Breakdown.VAT, "vat_usd"},
		{&record.Breakdown.IDF, "idf_usd"},
		{&record.Breakdown.RailwayLevy, "railway_levy_usd"},
		{&record.Breakdown.ServiceFees, "service_fees_kes"},
		{&record.Breakdown.TotalUSD, "total_usd"},
		{&record.Breakdown.TotalKES, "total_kes"},
		{&record.Breakdown.ExchangeRate, "exchange_rate"},
	}

	raw := make([]string, len(fields))
	dest := []any{&record.ID, &record.Hash, &record.Input.Make, &record.Input.Model, &record.Input.Year}
	for i := range raw {
		dest = append(dest, &raw[i])
	}
	dest = append(dest, &record.CreatedAt)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan calculation: %w", err)
	}

	for i, f := range fields {
		value, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, fmt.Errorf("bad %s in calculation %d: %w", f.name, record.ID, err)
		}
		*f.target = value
	}
	return &record, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
