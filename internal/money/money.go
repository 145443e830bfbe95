// Package money formats monetary amounts at the rendering boundary.
// Invoices are Colombian, so the printable format uses the es-CO
// convention: dot as thousands separator, comma as decimal separator.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed renders v with exactly two decimals and no grouping ("1234.50").
// This is the CSV cell format.
func Fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Format renders v the way es-CO displays amounts: "1.234.567,89".
func Format(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s[:len(s)-3]
	frac := s[len(s)-2:]

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 1)
	if neg {
		b.WriteByte('-')
	}
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}
