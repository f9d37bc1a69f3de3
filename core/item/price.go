package item

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a decimal amount that encodes as a bare JSON number.
//
// Decoding never fails: numbers and numeric strings are parsed, every other
// value (missing, null, booleans, garbage text) reads as zero.
type Price struct {
	decimal.Decimal
}

func NewPrice(f float64) Price {
	return Price{decimal.NewFromFloat(f)}
}

func PriceFromDecimal(d decimal.Decimal) Price {
	return Price{d}
}

func (p Price) Equal(o Price) bool {
	return p.Decimal.Equal(o.Decimal)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(b []byte) error {
	p.Decimal = coerceDecimal(b)
	return nil
}

func coerceDecimal(b []byte) decimal.Decimal {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return decimal.Zero
	}

	text := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return decimal.Zero
		}
		text = strings.TrimSpace(s)
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// coerceCount reads a quantity the same way prices are read; fractional
// values are truncated.
func coerceCount(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	return int(coerceDecimal(b).IntPart())
}
