// Package pkgmoney renders decimal amounts as currency strings.
//
// Amounts are kept as decimal.Decimal in major units everywhere in the
// application; this package only converts them for display.
package pkgmoney
