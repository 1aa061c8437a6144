package entity

import "github.com/shopspring/decimal"

// Summary aggregates a collection of transactions. Sums only include
// completed transactions; counts include every status.
type Summary struct {
	Total           int
	Deposits        decimal.Decimal
	Withdrawals     decimal.Decimal
	Transfers       decimal.Decimal
	Balance         decimal.Decimal
	DepositCount    int
	WithdrawalCount int
	TransferCount   int
}
