package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/txclean/internal/model"
)

const sheetName = "Transactions"

// Built-in Excel number format 4 is "#,##0.00".
const amountNumFmt = 4

var columnWidths = []struct {
	col   string
	width float64
}{
	{"A", 14}, {"B", 45}, {"C", 14}, {"D", 90},
}

// WriteXLSX writes rows as a single-sheet workbook: frozen bold header,
// auto filter, and a thousands-separated amount column.
func WriteXLSX(w io.Writer, rows []model.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: "Arial", Size: 10, Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Family: "Arial", Size: 10}})
	if err != nil {
		return fmt.Errorf("creating body style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Family: "Arial", Size: 10},
		NumFmt: amountNumFmt,
	})
	if err != nil {
		return fmt.Errorf("creating amount style: %w", err)
	}

	for _, c := range columnWidths {
		if err := f.SetColWidth(sheetName, c.col, c.col, c.width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", c.col, err)
		}
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "D1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		line := i + 2
		var amount any = r.AmountRaw
		if r.Amount.Valid {
			amount = r.Amount.Decimal.InexactFloat64()
		}
		cells := []any{r.Date, r.FinalClean(), amount, r.Memo}
		first := fmt.Sprintf("A%d", line)
		if err := f.SetSheetRow(sheetName, first, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", line, err)
		}
		if err := f.SetCellStyle(sheetName, first, fmt.Sprintf("D%d", line), bodyStyle); err != nil {
			return fmt.Errorf("styling row %d: %w", line, err)
		}
		amountCell := fmt.Sprintf("C%d", line)
		if err := f.SetCellStyle(sheetName, amountCell, amountCell, amountStyle); err != nil {
			return fmt.Errorf("styling amount in row %d: %w", line, err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}
	if err := f.AutoFilter(sheetName, "A1:D1", nil); err != nil {
		return fmt.Errorf("adding filter: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
