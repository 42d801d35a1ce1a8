package importer

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// parseFlag reads the bool-ish strings the sheets use. The product shipped
// with SI/NO cells; spreadsheet exports also produce TRUE/FALSE and 1/0.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "si", "sì", "yes", "y", "true", "1", "x":
		return true
	}
	return false
}

// parsePercent accepts an allocation cell and reports its value as a decimal
// string suitable for a NUMERIC bind. Only strictly positive, plausible
// percentages qualify; zero, negative and garbage values report false and
// the cell stays unallocated.
func parsePercent(v any) (string, bool) {
	var d decimal.Decimal
	switch n := v.(type) {
	case float64:
		d = decimal.NewFromFloat(n)
	case float32:
		d = decimal.NewFromFloat32(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case int64:
		d = decimal.NewFromInt(n)
	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return "", false
		}
		d = parsed
	default:
		return "", false
	}
	if d.Sign() <= 0 || d.GreaterThan(decimal.NewFromInt(999)) {
		return "", false
	}
	return d.String(), true
}

// parseLevel reads a skill level cell. Blank means unrated (level 0); any
// non-blank cell must carry a number.
func parseLevel(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
	if err != nil {
		return 0, false
	}
	return int(d.IntPart()), true
}

// parseRate reads a daily rate cell into minor units plus ISO currency. The
// sheets carry bare euro amounts, comma or dot decimals.
func parseRate(s string) (int64, string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", false
	}
	s = strings.TrimPrefix(s, "€")
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || d.Sign() < 0 {
		return 0, "", false
	}
	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	m := money.New(cents, money.EUR)
	return m.Amount(), m.Currency().Code, true
}
