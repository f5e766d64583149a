package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaseParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/chase_checking.csv")
	require.NoError(t, err)

	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, txns, 6)

	assert.Equal(t, "01/03/2025", txns[0].Date)
	assert.Equal(t, "-4.00", txns[0].AmountRaw)
	assert.Equal(t, "Purchase authorized on 01/02 GITHUB *PRO SUBSCRIPTION S123456789012 Card 4321", txns[0].Memo)
	assert.Equal(t, 2, txns[0].Line)

	assert.Equal(t, "3500.00", txns[3].AmountRaw)
	assert.Equal(t, 7, txns[5].Line)
}

func TestChaseParser_Format(t *testing.T) {
	p := &ChaseParser{}
	assert.Equal(t, "chase", p.Format())
}

func TestChaseParser_EmptyFile(t *testing.T) {
	p := &ChaseParser{}
	txns, err := p.Parse(strings.NewReader("Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestMemoParser_Parse(t *testing.T) {
	data, err := os.ReadFile("../../testdata/statement.csv")
	require.NoError(t, err)

	p := &MemoParser{}
	txns, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, txns, 4, "blank row is skipped")

	assert.Equal(t, "03/04/2025", txns[0].Date)
	assert.Equal(t, "(1,234.50)", txns[0].AmountRaw)
	assert.Equal(t, "WT 123456 /Bnf=G ACME CORP CO Srf#998877", txns[0].Memo)

	assert.Equal(t, "-", txns[2].AmountRaw)
	assert.Equal(t, 5, txns[2].Line)

	// Short row: memo cell missing.
	assert.Equal(t, "12.00", txns[3].AmountRaw)
	assert.Equal(t, "", txns[3].Memo)
}

func TestMemoParser_NormalizesCells(t *testing.T) {
	csv := "date,amount,memo\n 01/02/2025 ,  12.50  ,\"Zelle  to\n Bob \"\n"
	txns, err := (&MemoParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "01/02/2025", txns[0].Date)
	assert.Equal(t, "12.50", txns[0].AmountRaw)
	assert.Equal(t, "Zelle to Bob", txns[0].Memo)
}

func TestMemoParser_MissingColumns(t *testing.T) {
	_, err := (&MemoParser{}).Parse(strings.NewReader("Date,Amount,Description\n01/02/2025,1,x\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	assert.Contains(t, err.Error(), "memo")
}

func TestMemoParser_EmptyInput(t *testing.T) {
	_, err := (&MemoParser{}).Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestHeaderIndex_BOMAndCase(t *testing.T) {
	idx := headerIndex([]string{"\ufeffDATE", "  Amount  ", "Memo", "memo"})
	assert.Equal(t, 0, idx["date"])
	assert.Equal(t, 1, idx["amount"])
	assert.Equal(t, 3, idx["memo"], "last duplicate wins")
}

func TestMemoParser_DuplicateHeaderLastWins(t *testing.T) {
	csv := "Date,Memo,Amount,Memo\n03/04/2025,ignored,1.00,Zelle to Bob\n"
	txns, err := (&MemoParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Zelle to Bob", txns[0].Memo)
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	p := r.Get("chase")
	require.NotNil(t, p)
	assert.Equal(t, "chase", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	assert.NotNil(t, r.Get("Chase"))
	assert.NotNil(t, r.Get("CHASE"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&MemoParser{})
	assert.Panics(t, func() { r.Register(&MemoParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("memo"))
	assert.Equal(t, []string{"memo", "chase"}, r.Formats())
}

func TestRegistry_Detect(t *testing.T) {
	r := DefaultRegistry()

	p := r.Detect([]string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"})
	require.NotNil(t, p)
	assert.Equal(t, "chase", p.Format())

	p = r.Detect([]string{"\ufeffDate", "amount", "MEMO"})
	require.NotNil(t, p)
	assert.Equal(t, "memo", p.Format())

	assert.Nil(t, r.Detect([]string{"foo", "bar"}))
}

func TestRegistry_LoadFile(t *testing.T) {
	r := DefaultRegistry()

	txns, err := r.LoadFile("../../testdata/chase_checking.csv", FormatAuto)
	require.NoError(t, err)
	require.Len(t, txns, 6)
	for _, txn := range txns {
		assert.Equal(t, "chase_checking.csv", txn.Source)
	}

	txns, err = r.LoadFile("../../testdata/statement.csv", "memo")
	require.NoError(t, err)
	assert.Len(t, txns, 4)
}

func TestRegistry_LoadFileErrors(t *testing.T) {
	r := DefaultRegistry()

	_, err := r.LoadFile("../../testdata/statement.csv", "ofx")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = r.LoadFile("../../testdata/statement.csv", "chase")
	assert.ErrorIs(t, err, ErrMissingColumns)

	path := filepath.Join(t.TempDir(), "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))
	_, err = r.LoadFile(path, FormatAuto)
	assert.ErrorIs(t, err, ErrMissingColumns)

	_, err = r.LoadFile(filepath.Join(t.TempDir(), "missing.csv"), FormatAuto)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.CSV"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.CSV", files[1].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	info, err := os.Stat(filepath.Join(dir, "processed", "bank.csv"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}
