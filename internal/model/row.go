package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Row is a cleaned transaction ready for review or export.
type Row struct {
	Transaction
	Amount            decimal.NullDecimal // Valid is false when AmountRaw did not parse
	AutoClean         string
	ManualClean       string
	HasManualOverride bool
}

// SetManualClean records a user edit of the clean memo. Whitespace is
// collapsed; an edit equal to AutoClean clears the override.
func (r *Row) SetManualClean(value string) {
	value = strings.Join(strings.Fields(value), " ")
	if value == r.AutoClean {
		r.ManualClean = ""
		r.HasManualOverride = false
		return
	}
	r.ManualClean = value
	r.HasManualOverride = true
}

// FinalClean returns the manual override if one is set, else AutoClean.
func (r Row) FinalClean() string {
	if r.HasManualOverride {
		return r.ManualClean
	}
	return r.AutoClean
}
