package currency

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{25.5, "R$ 25,50"},
		{89.9, "R$ 89,90"},
		{1234.56, "R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{0.05, "R$ 0,05"},
		{-12.3, "-R$ 12,30"},
	}
	for _, c := range cases {
		if got := Format(c.in); got != c.want {
			t.Errorf("Format(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"R$ 25,50", 25.5},
		{"R$ 1.234,56", 1234.56},
		{"25,50", 25.5},
		{"R$ 89,90", 89.9}, // NBSP after the symbol
		{"", 0},
		{"abacaxi", 0},
		{"R$ ", 0},
	}
	for _, c := range cases {
		if got := Parse(c.in); got != c.want {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, amount := range []float64{0, 0.01, 9.99, 25.5, 123.45, 1234.56, 987654.32} {
		if got := Parse(Format(amount)); got != amount {
			t.Errorf("Parse(Format(%v)) = %v", amount, got)
		}
	}
}

func TestFormatDigits(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2550", "R$ 25,50"},
		{"12345", "R$ 123,45"},
		{"5", "R$ 0,05"},
		{"", "R$ 0,00"},
		{"R$ 1a2b3", "R$ 1,23"}, // non-digits dropped
	}
	for _, c := range cases {
		if got := FormatDigits(c.in); got != c.want {
			t.Errorf("FormatDigits(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
