package cleaner

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string // "" means invalid
	}{
		{"(1,234.50)", "-1234.5"},
		{"$45.00", "45"},
		{"-45.10", "-45.1"},
		{"$-45", "-45"},
		{"-$1,000", "-1000"},
		{"( 12 )", "-12"},
		{"(-5)", "5"},
		{"  12.5 USD", "12.5"},
		{"+7", "7"},
		{".5", "0.5"},
		{"1e3", "1000"},
		{"1,234,567.891", "1234567.891"},
		{"abc", ""},
		{"", ""},
		{"   ", ""},
		{"-", ""},
		{"$", ""},
		{"()", ""},
		{"Infinity", ""},
		{"1e400", ""},
		{"1e2000000", ""},
		{"1e20000000000", ""},
		{"1e-2000000", "0"},
		{"-1e-20000000000", "0"},
		{"1e-5", "0.00001"},
		{"\ufeff12.50", "12.5"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.raw)
		if tt.want == "" {
			assert.False(t, got.Valid, "ParseAmount(%q) should be invalid, got %s", tt.raw, got.Decimal)
			continue
		}
		if assert.True(t, got.Valid, "ParseAmount(%q) should be valid", tt.raw) {
			want := decimal.RequireFromString(tt.want)
			assert.True(t, want.Equal(got.Decimal), "ParseAmount(%q) = %s, want %s", tt.raw, got.Decimal, want)
		}
	}
}

func TestParseAmount_ExtremeLiteralsAreCheap(t *testing.T) {
	inputs := []string{
		"1e2000000",
		"1e20000000",
		"1e2000000000",
		"1e-2000000",
		"1e-2000000000",
		"0." + strings.Repeat("0", 100000) + "1",
	}
	start := time.Now()
	for _, raw := range inputs {
		got := ParseAmount(raw)
		FormatAmount(got, raw)
		if got.Valid {
			data, err := got.MarshalJSON()
			assert.NoError(t, err)
			assert.Less(t, len(data), 1024, "ParseAmount(%.20q) marshals to %d bytes", raw, len(data))
		}
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestParseAmount_LongMantissa(t *testing.T) {
	got := ParseAmount("0." + strings.Repeat("0", 100000) + "1")
	assert.True(t, got.Valid)
	assert.True(t, got.Decimal.IsZero())

	got = ParseAmount("123456789012345678901234567890.25")
	assert.True(t, got.Valid)
	assert.Equal(t, "123456789012345678901234567890.25", got.Decimal.String())
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"(1,234.50)", "-1,234.50"},
		{"$45", "45.00"},
		{"1234567.891", "1,234,567.89"},
		{"0.005", "0.01"},
		{"12", "12.00"},
		{"-", "-"},
		{"", ""},
		{"  n/a   pending ", "n/a pending"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(ParseAmount(tt.raw), tt.raw), "FormatAmount(%q)", tt.raw)
	}
}

func TestFormatAmount_InvalidUsesRaw(t *testing.T) {
	assert.Equal(t, "-", FormatAmount(decimal.NullDecimal{}, "-"))
}
