package cleaner

import "strings"

type feeMatch int

const (
	feeExact feeMatch = iota
	feePrefix
	feeContains
)

// feeTaxonomy maps bank fee lines to canonical labels, checked in order.
// An empty Label keeps the memo unchanged.
var feeTaxonomy = []struct {
	Pattern string
	Match   feeMatch
	Label   string
}{
	{"Domestic Incoming Wire Fee", feeExact, "Domestic Wire Fee"},
	{"Online Fx International Wire Fee", feeExact, "Online Fx International Wire Fee"},
	{"Online US Dollar Intl Wire Fee", feeExact, "Intl Wire Fee"},
	{"Wire Trans Svc Charge", feePrefix, "Wire Trans Svc Charge"},
	{"Wire Transfer Fee", feeExact, "Wire Transfer Fee"},
	{"OVERDRAFT ITEM FEE", feePrefix, "Overdraft Fee"},
	{"FINANCE CHARGE", feeContains, "FINANCE CHARGE"},
	{"Monthly Fee Business", feePrefix, "Monthly Fee Business"},
	{"RETURN ITEM CHARGEBACK", feeExact, "RETURN ITEM CHARGEBACK"},
	{"LATE PAYMENT FEE", feePrefix, ""},
}

// feeLabel returns the canonical fee label for memo, or "" if memo is not a
// known fee line.
func feeLabel(memo string) string {
	for _, f := range feeTaxonomy {
		var hit bool
		switch f.Match {
		case feeExact:
			hit = memo == f.Pattern
		case feePrefix:
			hit = strings.HasPrefix(memo, f.Pattern)
		case feeContains:
			hit = strings.Contains(memo, f.Pattern)
		}
		if !hit {
			continue
		}
		if f.Label == "" {
			return memo
		}
		return f.Label
	}
	return ""
}
