package importer

import (
	"io"

	"github.com/cleared-dev/txclean/internal/model"
)

var memoColumns = columns{
	date:   []string{"date"},
	amount: []string{"amount"},
	memo:   []string{"memo"},
}

// MemoParser reads the generic Date,amount,memo layout. Extra columns are
// ignored and header case does not matter.
type MemoParser struct{}

// Format returns the parser name.
func (p *MemoParser) Format() string { return "memo" }

// Detect reports whether header carries date, amount and memo columns.
func (p *MemoParser) Detect(header []string) bool { return memoColumns.matches(header) }

// Parse reads the CSV and returns its non-blank rows.
func (p *MemoParser) Parse(r io.Reader) ([]model.Transaction, error) {
	return readColumns(r, memoColumns)
}
