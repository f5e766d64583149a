package model

// Transaction is one statement row after column extraction, before cleaning.
type Transaction struct {
	Source    string // file name the row came from
	Line      int    // 1-based CSV record number; the header is record 1
	Date      string // whitespace-normalized, kept as the bank wrote it
	AmountRaw string // trimmed, unparsed
	Memo      string // whitespace-normalized original memo
}

// IsBlank reports whether the row carries no usable data.
func (t Transaction) IsBlank() bool {
	return t.Date == "" && t.AmountRaw == "" && t.Memo == ""
}
