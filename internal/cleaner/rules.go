package cleaner

import (
	"regexp"
	"strings"
)

// Rule pairs a memo-shape predicate with an extractor. Extract returns ""
// when it finds nothing usable; the dispatcher then keeps the memo as is.
type Rule struct {
	Name    string
	Match   func(memo string) bool
	Extract func(memo string) string
}

// catalog is evaluated top to bottom; the first matching rule wins.
var catalog = []Rule{
	{Name: "wt-wire", Match: matches(`(?i)^WT\s+\d+`), Extract: cleanOutgoingWire},
	{Name: "zelle-to", Match: matches(`(?i)^Zelle to\s+`), Extract: cleanZelleTo},
	{Name: "zelle-payment-to", Match: matches(`(?i)^Zelle payment to\s+`), Extract: cleanZellePaymentTo},
	{Name: "zelle-payment-from", Match: matches(`(?i)^Zelle Payment From\s+`), Extract: cleanZellePaymentFrom},
	{Name: "online-transfer-to", Match: matches(`^Online Transfer to\s+`), Extract: cleanOnlineTransferTo},
	{Name: "online-transfer-to-chk", Match: hasPrefix("Online Transfer To Chk"), Extract: literal("Transfer To Chk 7590")},
	{Name: "mobile-transfer-chk", Match: matches(`(?i)^Mobile transfer to CHK`), Extract: cleanMobileTransferToChk},
	{Name: "online-payment-crd", Match: matches(`(?i)^Online Banking payment to CRD`), Extract: cleanOnlinePaymentToCrd},
	{Name: "fedwire-credit", Match: hasPrefix("Fedwire Credit"), Extract: cleanFedwireCredit},
	{Name: "book-transfer-credit", Match: hasPrefix("Book Transfer Credit"), Extract: cleanBookTransferCredit},
	{Name: "fee", Match: func(m string) bool { return feeLabel(m) != "" }, Extract: feeLabel},
	{Name: "intl-wire", Match: hasPrefix("Online International Wire Transfer"), Extract: cleanIntlWire},
	{Name: "ach-orig-co", Match: hasPrefix("Orig CO Name:"), Extract: cleanAchOrigCoName},
	{Name: "des", Match: contains(" DES:"), Extract: cleanDesPayment},
	{Name: "card-authorized", Match: authorizedPrefix.MatchString, Extract: cleanAuthorizedPurchase},
	{Name: "purchase-legacy", Match: hasPrefix("PURCHASE "), Extract: cleanPurchaseLegacy},
	{Name: "checkcard-legacy", Match: hasPrefix("CHECKCARD "), Extract: cleanCheckcardLegacy},
	{Name: "b2b-ach-debit", Match: contains("Business to Business ACH Debit"), Extract: cleanB2BAchDebit},
	{Name: "service-charge", Match: hasPrefix("SERVICE CHARGE ACCT"), Extract: passthrough},
	{Name: passthroughRule, Match: func(string) bool { return true }, Extract: passthrough},
}

const passthroughRule = "passthrough"

// Rules returns a copy of the catalog in priority order.
func Rules() []Rule {
	out := make([]Rule, len(catalog))
	copy(out, catalog)
	return out
}

func matches(expr string) func(string) bool {
	return regexp.MustCompile(expr).MatchString
}

func hasPrefix(prefix string) func(string) bool {
	return func(m string) bool { return strings.HasPrefix(m, prefix) }
}

func contains(sub string) func(string) bool {
	return func(m string) bool { return strings.Contains(m, sub) }
}

func literal(s string) func(string) string {
	return func(string) string { return s }
}

func passthrough(m string) string { return m }

// submatch returns the first capture group of re in s, whitespace-normalized.
func submatch(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return NormalizeSpaces(m[1]), true
}

// strip removes every match of each expression, in order.
func strip(s string, exprs ...*regexp.Regexp) string {
	for _, re := range exprs {
		s = re.ReplaceAllString(s, "")
	}
	return s
}

var (
	wtBeneficiary = regexp.MustCompile(`(?i)/Bnf=(.+?)\s+Srf#`)
	wtLeadingG    = regexp.MustCompile(`(?i)^G\s+`)
	wtTrailingCO  = regexp.MustCompile(`(?i)\s+CO$`)
	wtTrailingCA  = regexp.MustCompile(`(?i)\s+CA$`)
	wtTrailingInc = regexp.MustCompile(`(?i)\s+Inc\.?$`)
)

func cleanOutgoingWire(memo string) string {
	name, ok := submatch(wtBeneficiary, memo)
	if !ok {
		return ""
	}
	return NormalizeSpaces(strip(name, wtLeadingG, wtTrailingCO, wtTrailingCA, wtTrailingInc))
}

var (
	zelleToPrefix  = regexp.MustCompile(`(?i)^Zelle to\s+`)
	zelleOnDateRef = regexp.MustCompile(`(?i)\s+on\s+\d{1,2}/\d{1,2}\s+Ref\s*#.*$`)
	trailingRef    = regexp.MustCompile(`(?i)\s+Ref\s*#.*$`)
)

func cleanZelleTo(memo string) string {
	name := NormalizeSpaces(zelleToPrefix.ReplaceAllString(memo, ""))
	return NormalizeSpaces(strip(name, zelleOnDateRef, trailingRef))
}

var (
	zellePaymentToPrefix = regexp.MustCompile(`(?i)^Zelle payment to\s+`)
	zellePaymentToFor    = regexp.MustCompile(`(?i)^Zelle payment to\s+(.+?)\s+for\s+`)
)

func cleanZellePaymentTo(memo string) string {
	if name, ok := submatch(zellePaymentToFor, memo); ok {
		return name
	}
	return NormalizeSpaces(zellePaymentToPrefix.ReplaceAllString(memo, ""))
}

// Reference prefixes other banks append to incoming Zelle memos.
var zelleReferencePrefixes = []string{"Bac", "Wfct", "Cof", "Cti", "Mac", "Hna", "H50", "Bbt", "0Ou"}

var (
	zelleFromPrefix   = regexp.MustCompile(`(?i)^Zelle Payment From\s+`)
	zelleReferenceTok = regexp.MustCompile(`(?i)\s+(?:(?:` + strings.Join(zelleReferencePrefixes, "|") + `)\S*|\d{8,})$`)
)

func cleanZellePaymentFrom(memo string) string {
	name := NormalizeSpaces(zelleFromPrefix.ReplaceAllString(memo, ""))
	for {
		next := strings.TrimSpace(zelleReferenceTok.ReplaceAllString(name, ""))
		if next == name {
			break
		}
		name = next
	}
	name = strings.TrimSpace(wtTrailingCA.ReplaceAllString(name, ""))
	return NormalizeSpaces(name)
}

var (
	onlineTransferPrefix = regexp.MustCompile(`^Online Transfer to\s+`)
	accountTypeSuffix    = regexp.MustCompile(`(?i)\s+(?:Everyday Checking|Business Checking|Savings|Personal Checking)\b.*$`)
	maskedAccountSuffix  = regexp.MustCompile(`(?i)\s+xxxxxx.*$`)
)

func cleanOnlineTransferTo(memo string) string {
	name := NormalizeSpaces(onlineTransferPrefix.ReplaceAllString(memo, ""))
	name = NormalizeSpaces(strip(name, accountTypeSuffix, maskedAccountSuffix, trailingRef))
	if name == "" {
		return "Transfer to"
	}
	return "Transfer to " + name
}

var (
	mobileTransferChk = regexp.MustCompile(`(?i)^Mobile transfer to CHK\s*(\d+)`)
	onlinePaymentCrd  = regexp.MustCompile(`(?i)^Online Banking payment to CRD\s*(\d+)`)
)

func cleanMobileTransferToChk(memo string) string {
	if digits, ok := submatch(mobileTransferChk, memo); ok {
		return "transfer to CHK " + digits
	}
	return "transfer to CHK"
}

func cleanOnlinePaymentToCrd(memo string) string {
	if digits, ok := submatch(onlinePaymentCrd, memo); ok {
		return "Online Banking payment to CRD " + digits
	}
	return "Online Banking payment to CRD"
}

var (
	fedwireSender      = regexp.MustCompile(`(?i)B/O:\s*\d+/(.+?)\s*\d/US/`)
	fedwireBeneficiary = regexp.MustCompile(`(?i)Bnf=([^/]+)`)
	fedwireMiramar     = regexp.MustCompile(`(?i)\s+Miramar\s+FL.*$`)
)

func cleanFedwireCredit(memo string) string {
	// Short sender captures are usually truncated codes, not names.
	if sender, ok := submatch(fedwireSender, memo); ok && wordCount(sender) > 3 {
		return sender
	}
	if bnf, ok := submatch(fedwireBeneficiary, memo); ok {
		if bnf = NormalizeSpaces(fedwireMiramar.ReplaceAllString(bnf, "")); bnf != "" {
			return bnf
		}
	}
	return "Fedwire Credit"
}

var (
	bookTransferOrg  = regexp.MustCompile(`(?i)Org:/\d+\s+(.+?)\s+Ref:`)
	bookTransferCity = regexp.MustCompile(`(?i)B/O:\s*(.+?)(?:\s+(?:Ocala|Columbus|Miramar)\s)`)
	bookTransferZip  = regexp.MustCompile(`(?i)B/O:\s*(.+?)(?:\s+\w+\s+\w{2}\s+\d{5})`)
)

func cleanBookTransferCredit(memo string) string {
	for _, re := range []*regexp.Regexp{bookTransferOrg, bookTransferCity, bookTransferZip} {
		if name, ok := submatch(re, memo); ok {
			return name
		}
	}
	return "Book Transfer Credit"
}

var (
	intlWireBeneficiary = regexp.MustCompile(`(?i)Ben:/\d+\s+(.+?)\s+Ref:`)
	intlWireAccount     = regexp.MustCompile(`(?i)A/C:\s*(.+?)\s+Medellin`)
)

func cleanIntlWire(memo string) string {
	if name, ok := submatch(intlWireBeneficiary, memo); ok {
		return name
	}
	if name, ok := submatch(intlWireAccount, memo); ok {
		return name
	}
	return "Online International Wire Transfer"
}

// ACH entry descriptors that say nothing about the counterparty.
var genericAchDescriptors = map[string]bool{"ach": true, "pmt": true, "achpmt": true}

var (
	achEntryDescr = regexp.MustCompile(`(?i)CO Entry Descr:\s*([A-Za-z0-9]+)`)
	achOrigCoName = regexp.MustCompile(`(?i)Orig CO Name:(.+?)\s+Orig\s+ID:`)
)

func cleanAchOrigCoName(memo string) string {
	if descr, ok := submatch(achEntryDescr, memo); ok && !genericAchDescriptors[strings.ToLower(descr)] {
		return descr
	}
	if name, ok := submatch(achOrigCoName, memo); ok {
		return name
	}
	return memo
}

var (
	clickPayDes     = regexp.MustCompile(`(?i)DES:\s*(\S+)`)
	desSeparator    = regexp.MustCompile(`(?i)\sDES:`)
	desTrailingWord = regexp.MustCompile(`(?i)\s+(?:DEBIT|DIRECT)$`)
)

func cleanDesPayment(memo string) string {
	if strings.HasPrefix(memo, "ClickPay") {
		if token, ok := submatch(clickPayDes, memo); ok {
			return token
		}
		return memo
	}
	before := desSeparator.Split(memo, 2)[0]
	if before == "" {
		before = memo
	}
	return NormalizeSpaces(desTrailingWord.ReplaceAllString(NormalizeSpaces(before), ""))
}

var (
	authorizedPrefix   = regexp.MustCompile(`(?i)^(?:Purchase authorized on|Recurring Payment authorized on|Purchase Intl authorized on)\s+`)
	leadingMonthDay    = regexp.MustCompile(`^\d{1,2}/\d{1,2}\s+`)
	cardReferenceTail  = regexp.MustCompile(`(?i)\s+S\d{10,}\s+Card\s+\S+.*$`)
	trailingThreeAlpha = regexp.MustCompile(`\s+[A-Za-z]{3}$`)
	trailingStateCode  = regexp.MustCompile(`\s+[A-Z]{2}$`)
	trailingEmail      = regexp.MustCompile(`\s+[\w.+-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	trailingURL        = regexp.MustCompile(`(?i)\s+https?://\S+$`)
	trailingTerminal   = regexp.MustCompile(`(?i)\s+T\d+$`)
	trailingCityWord   = regexp.MustCompile(`\s+[A-Z][a-z]+$`)
)

// cleanAuthorizedPurchase peels location clutter off card memos. The final
// city-word removal can also eat the last word of a two-word merchant; that
// tradeoff is accepted.
func cleanAuthorizedPurchase(memo string) string {
	merchant := authorizedPrefix.ReplaceAllString(memo, "")
	merchant = leadingMonthDay.ReplaceAllString(merchant, "")
	merchant = NormalizeSpaces(cardReferenceTail.ReplaceAllString(merchant, ""))
	merchant = strip(merchant, trailingThreeAlpha, trailingStateCode, trailingEmail, trailingURL, trailingTerminal)
	if wordCount(merchant) > 1 {
		merchant = trailingCityWord.ReplaceAllString(merchant, "")
	}
	return NormalizeSpaces(merchant)
}

var (
	purchasePrefix     = regexp.MustCompile(`(?i)^PURCHASE\s+\d{4}\s+`)
	longDigitRunTail   = regexp.MustCompile(`\s+\d{10,}.*$`)
	trailingStarToken  = regexp.MustCompile(`\s+\*[A-Za-z0-9]+$`)
	checkcardPrefix    = regexp.MustCompile(`(?i)^CHECKCARD\s+\d{4}\s+`)
	cardNumberTail     = regexp.MustCompile(`\s+\d{15,}.*$`)
	recurringTail      = regexp.MustCompile(`(?i)\s+RECURRING\b.*$`)
	ckcdTail           = regexp.MustCompile(`(?i)\s+CKCD\b.*$`)
	tenDigitTail       = regexp.MustCompile(`\s+\d{10}\b.*$`)
	trailingSlashToken = regexp.MustCompile(`/[A-Za-z0-9._-]+$`)
)

func cleanPurchaseLegacy(memo string) string {
	return NormalizeSpaces(strip(memo, purchasePrefix, longDigitRunTail, trailingStateCode, trailingStarToken))
}

func cleanCheckcardLegacy(memo string) string {
	return NormalizeSpaces(strip(memo,
		checkcardPrefix,
		cardNumberTail,
		recurringTail,
		ckcdTail,
		tenDigitTail,
		trailingStateCode,
		trailingSlashToken,
	))
}

var (
	b2bCompany         = regexp.MustCompile(`(?i)-\s*(.+?)(?:\s+ACH\b|\s+Retry\b|\s+\d)`)
	b2bCompanyFallback = regexp.MustCompile(`-\s*(.+)$`)
)

func cleanB2BAchDebit(memo string) string {
	if name, ok := submatch(b2bCompany, memo); ok {
		return name + " ACH"
	}
	if name, ok := submatch(b2bCompanyFallback, memo); ok {
		return name + " ACH"
	}
	return ""
}
