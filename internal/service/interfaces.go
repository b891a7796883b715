// Package service defines the interfaces between the application's layers.
package service

import (
	"context"

	"github.com/Kamaumbugua-dev/Kenya-Car-Import-Cost-Calculator/internal/model"
)

// CRSPFilter defines filtering options for CRSP database queries.
// Make and Model are matched as case-insensitive substrings.
type CRSPFilter struct {
	Make  string
	Model string
	Limit int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// CRSP reference database operations
	SaveCRSPEntries(ctx context.Context, entries []model.CRSPEntry) (int, error)
	SearchCRSP(ctx context.Context, filter CRSPFilter) ([]model.CRSPEntry, error)
	CountCRSPEntries(ctx context.Context) (int, error)
	ClearCRSPEntries(ctx context.Context) error

	// Calculation history operations
	SaveCalculation(ctx context.Context, record *model.CalculationRecord) error
	GetCalculation(ctx context.Context, id int64) (*model.CalculationRecord, error)
	ListCalculations(ctx context.Context, limit int) ([]model.CalculationRecord, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// VehicleScraper extracts whatever vehicle attributes it can from a listing
// page. A partial result is normal; callers fall back to manual entry for
// anything missing.
type VehicleScraper interface {
	Scrape(ctx context.Context, url string) (*model.ScrapedVehicle, error)
}
