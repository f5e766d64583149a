package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/txclean/internal/cleaner"
	"github.com/cleared-dev/txclean/internal/model"
)

// ErrMissingColumns is returned when a file lacks a date, amount or memo column.
var ErrMissingColumns = errors.New("missing required columns")

const bom = "\ufeff"

// columns names the header aliases for each logical field, in preference order.
type columns struct {
	date   []string
	amount []string
	memo   []string
}

// headerIndex maps normalized header names to column positions. The last
// occurrence of a duplicate header wins.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, bom)
		}
		idx[cleaner.LookupKey(h)] = i
	}
	return idx
}

func lookup(idx map[string]int, aliases []string) (int, bool) {
	for _, a := range aliases {
		if i, ok := idx[a]; ok {
			return i, true
		}
	}
	return 0, false
}

type columnPositions struct {
	date, amount, memo int
}

func (c columns) resolve(header []string) (columnPositions, error) {
	idx := headerIndex(header)
	var pos columnPositions
	var missing []string
	var ok bool
	if pos.date, ok = lookup(idx, c.date); !ok {
		missing = append(missing, c.date[0])
	}
	if pos.amount, ok = lookup(idx, c.amount); !ok {
		missing = append(missing, c.amount[0])
	}
	if pos.memo, ok = lookup(idx, c.memo); !ok {
		missing = append(missing, c.memo[0])
	}
	if len(missing) > 0 {
		return pos, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return pos, nil
}

func (c columns) matches(header []string) bool {
	_, err := c.resolve(header)
	return err == nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// readColumns reads a headed CSV and extracts one Transaction per non-blank
// row. Short rows are padded with empty cells.
func readColumns(r io.Reader, c columns) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	pos, err := c.resolve(header)
	if err != nil {
		return nil, err
	}

	var txns []model.Transaction
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		txn := model.Transaction{
			Line:      line,
			Date:      cleaner.NormalizeSpaces(cell(rec, pos.date)),
			AmountRaw: strings.TrimSpace(cell(rec, pos.amount)),
			Memo:      cleaner.NormalizeSpaces(cell(rec, pos.memo)),
		}
		if txn.IsBlank() {
			continue
		}
		txns = append(txns, txn)
	}
	return txns, nil
}
