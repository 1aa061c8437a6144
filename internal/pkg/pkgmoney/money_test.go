package pkgmoney

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{name: "usd grouping", amount: decimal.RequireFromString("1250"), currency: "USD", want: "$1,250.00"},
		{name: "usd cents", amount: decimal.RequireFromString("89.99"), currency: "USD", want: "$89.99"},
		{name: "negative", amount: decimal.RequireFromString("-40.5"), currency: "USD", want: "-$40.50"},
		{name: "rounds extra digits", amount: decimal.RequireFromString("0.005"), currency: "USD", want: "$0.01"},
		{name: "beyond int64 minor units", amount: decimal.RequireFromString("1e20"), currency: "USD", want: "100000000000000000000.00 USD"},
		{name: "large negative beyond range", amount: decimal.RequireFromString("-92233720368547758.09"), currency: "USD", want: "-92233720368547758.09 USD"},
		{name: "unknown falls back to usd", amount: decimal.RequireFromString("1"), currency: "???", want: "$1.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Format(tc.amount, tc.currency); got != tc.want {
				t.Fatalf("Format(%s, %s) = %q, want %q", tc.amount, tc.currency, got, tc.want)
			}
		})
	}
}

func TestNewKeepsCurrency(t *testing.T) {
	m, err := New(decimal.RequireFromString("12.34"), "EUR")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := m.Currency().Code; got != "EUR" {
		t.Fatalf("currency = %q, want EUR", got)
	}
	if got := m.Amount(); got != 1234 {
		t.Fatalf("amount = %d, want 1234", got)
	}
}

func TestNewRange(t *testing.T) {
	if _, err := New(decimal.RequireFromString("92233720368547758.07"), "USD"); err != nil {
		t.Fatalf("largest representable amount rejected: %v", err)
	}
	if _, err := New(decimal.RequireFromString("92233720368547758.08"), "USD"); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}
