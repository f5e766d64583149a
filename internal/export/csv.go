package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/txclean/internal/model"
)

// MarshalRow converts a Row to a CSV record. A parsed amount is written as a
// plain two-decimal number; an unparsed one keeps the raw field.
func MarshalRow(r model.Row) []string {
	rec := make([]string, numFields)
	rec[colDate] = r.Date
	rec[colClean] = r.FinalClean()
	if r.Amount.Valid {
		rec[colAmount] = r.Amount.Decimal.StringFixed(2)
	} else {
		rec[colAmount] = r.AmountRaw
	}
	rec[colOriginal] = r.Memo
	return rec
}

// WriteCSV writes rows to w, header first.
func WriteCSV(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range rows {
		if err := cw.Write(MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
