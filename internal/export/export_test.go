package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/txclean/internal/model"
	"github.com/cleared-dev/txclean/internal/pipeline"
)

func testRows() []model.Row {
	rows := []model.Row{
		pipeline.Clean(model.Transaction{Date: "03/04/2025", AmountRaw: "(1,234.50)", Memo: "WT 123456 /Bnf=G ACME CORP CO Srf#998877"}, nil),
		pipeline.Clean(model.Transaction{Date: "03/05/2025", AmountRaw: "-", Memo: "Domestic Incoming Wire Fee"}, nil),
		pipeline.Clean(model.Transaction{Date: "03/06/2025", AmountRaw: "$45", Memo: "Zelle to Jane Doe Ref#1"}, nil),
	}
	rows[2].SetManualClean("Landlord")
	return rows
}

func TestMarshalRow(t *testing.T) {
	rows := testRows()
	assert.Equal(t, []string{"03/04/2025", "ACME CORP", "-1234.50", "WT 123456 /Bnf=G ACME CORP CO Srf#998877"}, MarshalRow(rows[0]))
	assert.Equal(t, []string{"03/05/2025", "Domestic Wire Fee", "-", "Domestic Incoming Wire Fee"}, MarshalRow(rows[1]))
	assert.Equal(t, "Landlord", MarshalRow(rows[2])[colClean])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, Header, records[0])
	assert.Equal(t, "45.00", records[3][colAmount])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Date,clean transactions,amount,original transactions\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testRows()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	header, err := f.GetCellValue(sheetName, "B1")
	require.NoError(t, err)
	assert.Equal(t, "clean transactions", header)

	clean, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "ACME CORP", clean)

	amount, err := f.GetCellValue(sheetName, "C2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "-1234.5", amount)

	raw, err := f.GetCellValue(sheetName, "C3")
	require.NoError(t, err)
	assert.Equal(t, "-", raw)

	override, err := f.GetCellValue(sheetName, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Landlord", override)

	original, err := f.GetCellValue(sheetName, "D3")
	require.NoError(t, err)
	assert.Equal(t, "Domestic Incoming Wire Fee", original)
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", nil))
	assert.Contains(t, buf.String(), "clean transactions")

	err := Write(&buf, "ods", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 30, 59, 0, time.UTC)
	assert.Equal(t, "cleaned-transactions-2025-03-04-10-30.xlsx", Filename(now, "xlsx"))
}
