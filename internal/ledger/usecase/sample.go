package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

// SampleTransactions is the demo data set used for seeding and reset.
func SampleTransactions() []entity.TransactionInput {
	return []entity.TransactionInput{
		{
			Amount:      decimal.RequireFromString("1250.00"),
			Description: "Salary deposit",
			Type:        entity.TxTypeDeposit,
			Status:      entity.TxStatusCompleted,
		},
		{
			Amount:      decimal.RequireFromString("89.99"),
			Description: "Grocery shopping",
			Type:        entity.TxTypeWithdrawal,
			Status:      entity.TxStatusCompleted,
		},
		{
			Amount:      decimal.RequireFromString("500.00"),
			Description: "Transfer to savings",
			Type:        entity.TxTypeTransfer,
			Status:      entity.TxStatusCompleted,
			Sender:      "Checking account (1234)",
			Recipient:   "Savings account (5678)",
		},
		{
			Amount:      decimal.RequireFromString("199.50"),
			Description: "Monthly subscription",
			Type:        entity.TxTypeWithdrawal,
			Status:      entity.TxStatusPending,
		},
		{
			Amount:      decimal.RequireFromString("50.00"),
			Description: "Friend payment",
			Type:        entity.TxTypeTransfer,
			Status:      entity.TxStatusCompleted,
			Sender:      "Checking account (1234)",
			Recipient:   "John Smith (9876)",
		},
	}
}
