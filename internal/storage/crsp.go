package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/service"
)

// SaveCRSPEntries bulk-inserts reference price entries inside a single
// transaction and returns the number of rows written.
func (s *SQLiteStorage) SaveCRSPEntries(ctx context.Context, entries []model.CRSPEntry) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateCRSPEntries(entries); err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO crsp_entries (make, model, model_number, engine_size_liters, crsp_value_kes)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	saved := 0
	for _, entry := range entries {
		_, err := stmt.ExecContext(ctx,
			entry.Make,
			entry.Model,
			nullableString(entry.ModelNumber),
			nullableDecimal(entry.EngineSizeLiters),
			nullableDecimal(entry.CRSPValueKES),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert CRSP entry %s %s: %w", entry.Make, entry.Model, err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit CRSP entries: %w", err)
	}

	slog.Debug("saved CRSP entries", "count", saved)
	return saved, nil
}

// SearchCRSP returns entries whose make and model contain the filter values,
// case-insensitively. An empty filter field matches everything.
func (s *SQLiteStorage) SearchCRSP(ctx context.Context, filter service.CRSPFilter) ([]model.CRSPEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, make, model, model_number, engine_size_liters, crsp_value_kes
		FROM crsp_entries
		WHERE UPPER(make) LIKE ? AND UPPER(model) LIKE ?
		ORDER BY make, model`
	args := []any{
		"%" + strings.ToUpper(strings.TrimSpace(filter.Make)) + "%",
		"%" + strings.ToUpper(strings.TrimSpace(filter.Model)) + "%",
	}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query CRSP entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.CRSPEntry
	for rows.Next() {
		entry, err := scanCRSPEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating CRSP entries: %w", err)
	}

	slog.Debug("searched CRSP entries",
		"make", filter.Make,
		"model", filter.Model,
		"matches", len(entries))
	return entries, nil
}

// CountCRSPEntries returns the number of reference rows currently loaded.
func (s *SQLiteStorage) CountCRSPEntries(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM crsp_entries").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count CRSP entries: %w", err)
	}
	return count, nil
}

// ClearCRSPEntries removes every reference row, used before re-importing a
// fresh KRA file.
func (s *SQLiteStorage) ClearCRSPEntries(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM crsp_entries"); err != nil {
		return fmt.Errorf("failed to clear CRSP entries: %w", err)
	}
	return nil
}

func scanCRSPEntry(rows *sql.Rows) (model.CRSPEntry, error) {
	var entry model.CRSPEntry
	var modelNumber, engineSize, crspValue sql.NullString

	if err := rows.Scan(&entry.ID, &entry.Make, &entry.Model, &modelNumber, &engineSize, &crspValue); err != nil {
		return model.CRSPEntry{}, fmt.Errorf("failed to scan CRSP entry: %w", err)
	}

	entry.ModelNumber = modelNumber.String
	var err error
	if entry.EngineSizeLiters, err = parseNullableDecimal(engineSize); err != nil {
		return model.CRSPEntry{}, fmt.Errorf("bad engine size for entry %d: %w", entry.ID, err)
	}
	if entry.CRSPValueKES, err = parseNullableDecimal(crspValue); err != nil {
		return model.CRSPEntry{}, fmt.Errorf("bad CRSP value for entry %d: %w", entry.ID, err)
	}
	return entry, nil
}

// Decimals are persisted as their exact string representation so values
// survive a round-trip without binary float drift.
func nullableDecimal(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseNullableDecimal(ns sql.NullString) (decimal.Decimal, error) {
	if !ns.Valid || ns.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(ns.String)
}
