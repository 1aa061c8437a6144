package entity

import "time"

// ChangeEvent describes a successful mutation of the ledger.
type ChangeEvent struct {
	EventID       string
	Kind          ChangeKind
	TransactionID string
	At            time.Time
}
