package usecase

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

func TestSummarizeBalance(t *testing.T) {
	txs := []entity.Transaction{
		tx("d", entity.TxTypeDeposit, entity.TxStatusCompleted, "100", "in", 1),
		tx("w", entity.TxTypeWithdrawal, entity.TxStatusCompleted, "40", "out", 2),
		tx("p", entity.TxTypeWithdrawal, entity.TxStatusPending, "40", "later", 3),
		tx("t", entity.TxTypeTransfer, entity.TxStatusCompleted, "25", "move", 4),
		tx("f", entity.TxTypeTransfer, entity.TxStatusFailed, "99", "bounced", 5),
	}

	s := Summarize(txs)

	if s.Total != 5 {
		t.Fatalf("Total = %d, want 5", s.Total)
	}
	if !s.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("Balance = %s, want 60", s.Balance)
	}
	if !s.Deposits.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("Deposits = %s, want 100", s.Deposits)
	}
	if !s.Withdrawals.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("Withdrawals = %s, want 40", s.Withdrawals)
	}
	if !s.Transfers.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("Transfers = %s, want 25", s.Transfers)
	}
	if s.DepositCount != 1 || s.WithdrawalCount != 2 || s.TransferCount != 2 {
		t.Fatalf("counts = %d/%d/%d, want 1/2/2", s.DepositCount, s.WithdrawalCount, s.TransferCount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total != 0 || !s.Balance.IsZero() || !s.Deposits.IsZero() {
		t.Fatalf("Summarize(nil) = %+v", s)
	}
}

func TestSummarizeSampleData(t *testing.T) {
	txs := make([]entity.Transaction, 0, len(SampleTransactions()))
	for i, in := range SampleTransactions() {
		txs = append(txs, entity.Transaction{
			ID: string(rune('a' + i)), Amount: in.Amount, Description: in.Description,
			Type: in.Type, Status: in.Status, Sender: in.Sender, Recipient: in.Recipient,
		})
	}

	s := Summarize(txs)
	if !s.Balance.Equal(decimal.RequireFromString("1160.01")) {
		t.Fatalf("Balance = %s, want 1160.01", s.Balance)
	}
	if !s.Transfers.Equal(decimal.RequireFromString("550")) {
		t.Fatalf("Transfers = %s, want 550", s.Transfers)
	}
}
