package cleaner

import "github.com/cleared-dev/txclean/internal/model"

// builtInNormalization rewrites names that show up truncated or mangled on
// statements. Keys are exact, case-sensitive, whitespace-normalized.
var builtInNormalization = map[string]string{
	"Motorcycle Spare Parts Max Import":   "Motorcycle Spare Parts Max Import LLC",
	"Motorcycle Spare Parts Max Import L": "Motorcycle Spare Parts Max Import LLC",
	"CHARCO UTILITIES":                    "Charlotte County Utilities",
	"CHARLOTTE UTILTY":                    "Charlotte County Utilities",
	"LEE COUNTY":                          "LEE COUNTY TAX COLLECTOR",
	"ATT* BILL":                           "AT&T",
	"ATT* BILL PAYMENT":                   "AT&T",
	"APPLE.COM/BILL":                      "APPLE.COM",
	"AMAZON MKTPL":                        "Amazon",
	"yrr service":                         "YRR SERVICE LLC",
	"AIR-VAC CONNECTIO TAMPA":             "AIR-VAC CONNECTION",
	"Hotel at Booking.":                   "Hotel",
	"NST THE HOME D":                      "THE HOME DEPOT",
	"FPL DIRECT DEBIT":                    "FPL DIRECT",
	"CULVERS PUNTA GOR PUNTA GORDA":       "CULVERS",
	"TEDS MARATHON PORT CHARLOTTFL":       "MARATHON",
	"MICCOSUKEE SER FORT LAUDERDAFL":      "MICCOSUKEE",
	"MISSION BBQ CAPE CAPE CORAL":         "MISSION BBQ",
	"SHELL SERVICE PUNTA GORDA":           "SHELL SERVICE",
}

// BuiltInNormalization looks name up in the built-in table.
func BuiltInNormalization(name string) (string, bool) {
	v, ok := builtInNormalization[NormalizeSpaces(name)]
	return v, ok
}

// ApplyNameNormalization rewrites candidate through the built-in table and
// then the caller's mappings. The first mapping whose From matches wins.
func ApplyNameNormalization(candidate string, mappings []model.Mapping) string {
	name := NormalizeSpaces(candidate)
	if name == "" {
		return ""
	}
	if v, ok := BuiltInNormalization(name); ok {
		name = v
	}

	key := LookupKey(name)
	for _, m := range mappings {
		if LookupKey(m.From) == key {
			return NormalizeSpaces(m.To)
		}
	}
	return name
}
