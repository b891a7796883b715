package model

import (
	"github.com/shopspring/decimal"
)

// CRSPEntry is a single row from the KRA Customs Reference Standard Price
// database. Only Make and Model are guaranteed; everything else is
// best-effort extracted from whatever columns the uploaded file carried.
type CRSPEntry struct {
	ID               int64
	Make             string
	Model            string
	ModelNumber      string
	EngineSizeLiters decimal.Decimal // zero when not extractable
	CRSPValueKES     decimal.Decimal // zero when the file had no price column
}

// HasEngineSize reports whether an engine size could be extracted for
// this entry.
func (e CRSPEntry) HasEngineSize() bool {
	return e.EngineSizeLiters.IsPositive()
}
