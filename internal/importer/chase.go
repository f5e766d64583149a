package importer

import (
	"io"

	"github.com/cleared-dev/txclean/internal/model"
)

var chaseColumns = columns{
	date:   []string{"posting date", "transaction date"},
	amount: []string{"amount"},
	memo:   []string{"description"},
}

// ChaseParser parses Chase bank checking and card CSV exports.
type ChaseParser struct{}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Detect reports whether header looks like a Chase export.
func (p *ChaseParser) Detect(header []string) bool { return chaseColumns.matches(header) }

// Parse reads a Chase CSV. Checking exports end each data row with a
// trailing comma, so rows may be wider than the header.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Transaction, error) {
	return readColumns(r, chaseColumns)
}
