package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

// Summarize reduces txs into totals. Only completed transactions count toward
// the sums; the balance is deposits minus withdrawals.
func Summarize(txs []entity.Transaction) entity.Summary {
	s := entity.Summary{
		Total:       len(txs),
		Deposits:    decimal.Zero,
		Withdrawals: decimal.Zero,
		Transfers:   decimal.Zero,
	}

	for _, tx := range txs {
		completed := tx.Status == entity.TxStatusCompleted

		switch tx.Type {
		case entity.TxTypeDeposit:
			s.DepositCount++
			if completed {
				s.Deposits = s.Deposits.Add(tx.Amount)
			}
		case entity.TxTypeWithdrawal:
			s.WithdrawalCount++
			if completed {
				s.Withdrawals = s.Withdrawals.Add(tx.Amount)
			}
		case entity.TxTypeTransfer:
			s.TransferCount++
			if completed {
				s.Transfers = s.Transfers.Add(tx.Amount)
			}
		}
	}

	s.Balance = s.Deposits.Sub(s.Withdrawals)

	return s
}
