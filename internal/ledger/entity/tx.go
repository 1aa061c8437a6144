package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger record. ID and Date are assigned by the
// store on creation and never change afterwards.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Description string
	Type        TxType
	Status      TxStatus
	Date        time.Time

	// Sender and Recipient are only meaningful for transfers.
	Sender    string
	Recipient string
}

// TransactionInput holds the caller-supplied fields of a new transaction.
type TransactionInput struct {
	Amount      decimal.Decimal
	Description string
	Type        TxType
	Status      TxStatus
	Sender      string
	Recipient   string
}

// TransactionPatch is a partial update. A nil field is left untouched.
type TransactionPatch struct {
	Amount      *decimal.Decimal
	Description *string
	Type        *TxType
	Status      *TxStatus
	Sender      *string
	Recipient   *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TransactionPatch) IsEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.Type == nil &&
		p.Status == nil && p.Sender == nil && p.Recipient == nil
}

// Apply merges the provided fields into tx. It performs no validation.
func (p TransactionPatch) Apply(tx *Transaction) {
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Status != nil {
		tx.Status = *p.Status
	}
	if p.Sender != nil {
		tx.Sender = *p.Sender
	}
	if p.Recipient != nil {
		tx.Recipient = *p.Recipient
	}
}
