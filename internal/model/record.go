package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// CalculationRecord is a persisted calculation session: the inputs that were
// submitted and the breakdown they produced.
type CalculationRecord struct {
	CreatedAt time.Time
	ID        int64
	Hash      string
	Input     VehicleInput
	Breakdown CostBreakdown
}

// GenerateHash creates a unique hash over the inputs for duplicate detection.
func (r *CalculationRecord) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%d:%s:%s:%s:%s",
		r.Input.Make,
		r.Input.Model,
		r.Input.Year,
		r.Input.EngineSizeLiters.String(),
		r.Input.FOBValueUSD.String(),
		r.Input.FreightUSD.String(),
		r.Input.InsuranceUSD.String())
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
