// Package export writes cleaned rows as CSV or XLSX with four fixed
// columns: date, clean memo, amount, original memo.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cleared-dev/txclean/internal/model"
)

// Header is the column header shared by every export format.
var Header = []string{"Date", "clean transactions", "amount", "original transactions"}

const (
	colDate = iota
	colClean
	colAmount
	colOriginal
	numFields
)

// Supported export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Write dispatches to WriteCSV or WriteXLSX by format.
func Write(w io.Writer, format string, rows []model.Row) error {
	switch strings.ToLower(format) {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// Filename returns cleaned-transactions-YYYY-MM-DD-HH-MM.<ext> in UTC.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("cleaned-transactions-%s.%s", now.UTC().Format("2006-01-02-15-04"), ext)
}
