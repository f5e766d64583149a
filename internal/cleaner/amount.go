package cleaner

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	parenAmount = regexp.MustCompile(`^\((.+)\)$`)
	// Leading decimal literal; anything after it is ignored.
	amountLiteral = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE]([+-]?\d+))?`)
	amountNoise   = strings.NewReplacer("$", "", ",", "")
)

// Literals longer than maxExactDigits or with a larger exponent magnitude
// than maxExactExponent are built from their float64 value instead of
// exactly, so an amount cell cannot force huge decimals.
const (
	maxExactDigits   = 64
	maxExactExponent = 400
)

// ParseAmount converts a statement amount field to a signed decimal.
// "(1,234.50)" is -1234.50 and "$45.00" is 45. The result is invalid when
// the field is empty or holds no number.
func ParseAmount(raw string) decimal.NullDecimal {
	s := strings.TrimFunc(raw, isSpace)
	if s == "" {
		return decimal.NullDecimal{}
	}

	negative := false
	if m := parenAmount.FindStringSubmatch(s); m != nil {
		negative = true
		s = m[1]
	}

	s = strings.TrimLeftFunc(amountNoise.Replace(s), isSpace)
	m := amountLiteral.FindStringSubmatch(s)
	if m == nil {
		return decimal.NullDecimal{}
	}
	lit := strings.TrimPrefix(m[0], "+")

	// Overflow is invalid; underflow rounds toward zero.
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return decimal.NullDecimal{}
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return decimal.NullDecimal{}
	}

	var d decimal.Decimal
	if exactLiteral(lit, m[1]) {
		if d, err = decimal.NewFromString(lit); err != nil {
			return decimal.NullDecimal{}
		}
	} else {
		d = decimal.NewFromFloat(f)
	}

	if negative {
		d = d.Neg()
	}
	return decimal.NewNullDecimal(d)
}

func exactLiteral(lit, exp string) bool {
	if len(lit) > maxExactDigits {
		return false
	}
	if exp == "" {
		return true
	}
	e, err := strconv.Atoi(exp)
	return err == nil && e >= -maxExactExponent && e <= maxExactExponent
}

// FormatAmount renders a parsed amount as en-US text with two decimals and
// thousands separators. When the amount is invalid the raw field is shown
// instead so nothing is lost.
func FormatAmount(v decimal.NullDecimal, rawFallback string) string {
	if !v.Valid {
		return NormalizeSpaces(rawFallback)
	}
	p := message.NewPrinter(language.AmericanEnglish)
	f := v.Decimal.Round(2).InexactFloat64()
	return p.Sprintf("%v", number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
