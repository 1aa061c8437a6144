package entity

import "strings"

type TxType string

const (
	TxTypeDeposit    TxType = "deposit"
	TxTypeWithdrawal TxType = "withdrawal"
	TxTypeTransfer   TxType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	switch t {
	case TxTypeDeposit, TxTypeWithdrawal, TxTypeTransfer:
		return true
	default:
		return false
	}
}

// ParseTxType parses a transaction type case-insensitively.
func ParseTxType(value string) (TxType, bool) {
	t := TxType(strings.ToLower(strings.TrimSpace(value)))
	return t, t.Valid()
}

type TxStatus string

const (
	TxStatusCompleted TxStatus = "completed"
	TxStatusPending   TxStatus = "pending"
	TxStatusFailed    TxStatus = "failed"
)

func (s TxStatus) Valid() bool {
	switch s {
	case TxStatusCompleted, TxStatusPending, TxStatusFailed:
		return true
	default:
		return false
	}
}

// ParseTxStatus parses a transaction status case-insensitively.
func ParseTxStatus(value string) (TxStatus, bool) {
	s := TxStatus(strings.ToLower(strings.TrimSpace(value)))
	return s, s.Valid()
}

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
	ChangeCleared ChangeKind = "cleared"
	ChangeReset   ChangeKind = "reset"
)
