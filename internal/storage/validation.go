package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidEntry  = errors.New("invalid CRSP entry")
	ErrInvalidRecord = errors.New("invalid calculation record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCRSPEntries validates a slice of CRSP entries.
func validateCRSPEntries(entries []model.CRSPEntry) error {
	if entries == nil {
		return fmt.Errorf("%w: entries", ErrNilParameter)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: entries", ErrEmptySlice)
	}

	for i, entry := range entries {
		if err := validateCRSPEntry(&entry); err != nil {
			return fmt.Errorf("entry at index %d: %w", i, err)
		}
	}
	return nil
}

// validateCRSPEntry validates a single CRSP entry.
func validateCRSPEntry(entry *model.CRSPEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if entry.Make == "" {
		return fmt.Errorf("%w: missing make", ErrInvalidEntry)
	}
	if entry.Model == "" {
		return fmt.Errorf("%w: missing model", ErrInvalidEntry)
	}
	return nil
}

// validateCalculationRecord validates a calculation record before saving.
func validateCalculationRecord(record *model.CalculationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if record.Input.Make == "" {
		return fmt.Errorf("%w: missing make", ErrInvalidRecord)
	}
	if record.Input.Model == "" {
		return fmt.Errorf("%w: missing model", ErrInvalidRecord)
	}
	if record.Input.Year == 0 {
		return fmt.Errorf("%w: missing year", ErrInvalidRecord)
	}
	return nil
}
