// Package currency converts between pt-BR display prices ("R$ 1.234,56")
// and numeric amounts. Product prices are stored as display strings, so
// every valuation first goes through Parse.
package currency

import (
	"math"
	"strconv"
	"strings"
)

const symbol = "R$"

// Parse extracts the numeric amount from a display price.
// It strips the currency symbol and thousands separators, converts the
// decimal comma to a dot and parses the rest. Unparseable input yields 0;
// Parse never fails the caller.
func Parse(display string) float64 {
	s := strings.ReplaceAll(display, symbol, "")
	s = strings.ReplaceAll(s, "\u00a0", " ") // locale formatters may emit NBSP
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Format renders amount as a pt-BR currency string: "R$" prefix, dot
// thousands groups, comma decimal separator, two decimal places.
// Format is the exact inverse of Parse for the values it produces.
func Format(amount float64) string {
	neg := amount < 0
	cents := int64(math.Round(math.Abs(amount) * 100))

	intPart := strconv.FormatInt(cents/100, 10)
	decPart := cents % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteByte(' ')
	b.WriteString(groupThousands(intPart))
	b.WriteByte(',')
	if decPart < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(decPart, 10))
	return b.String()
}

// FormatDigits interprets a raw digit string as cents and formats it.
// Used for the "type digits, see currency" price input: "12345" → "R$ 123,45".
// Non-digit characters are ignored; an empty result formats as zero.
func FormatDigits(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		cents = 0
	}
	return Format(float64(cents) / 100)
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
