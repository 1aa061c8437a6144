package pkgmoney

import (
	"errors"
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an empty or unknown currency code is given.
const DefaultCurrency = money.USD

// ErrOutOfRange is returned by New when the amount has more minor units than
// go-money can hold in an int64.
var ErrOutOfRange = errors.New("amount out of range for minor units")

var (
	minMinor = decimal.NewFromInt(math.MinInt64)
	maxMinor = decimal.NewFromInt(math.MaxInt64)
)

// Format renders amount (in major units) using the currency's symbol, grouping
// and fraction digits, for example "$1,250.00". Amounts too large for New are
// rendered as plain fixed-point digits followed by the currency code.
func Format(amount decimal.Decimal, currency string) string {
	m, err := New(amount, currency)
	if err != nil {
		cur := lookup(currency)
		return amount.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return m.Display()
}

// New converts a major-unit decimal into a go-money value. Digits beyond the
// currency fraction are rounded half away from zero.
func New(amount decimal.Decimal, currency string) (*money.Money, error) {
	cur := lookup(currency)

	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	if minor.LessThan(minMinor) || minor.GreaterThan(maxMinor) {
		return nil, ErrOutOfRange
	}
	return money.New(minor.IntPart(), cur.Code), nil
}

func lookup(currency string) *money.Currency {
	if cur := money.GetCurrency(currency); cur != nil {
		return cur
	}
	return money.GetCurrency(DefaultCurrency)
}
