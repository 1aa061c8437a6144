package inbound

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        entity.TxType   `json:"type"`
	Status      entity.TxStatus `json:"status"`
	Date        time.Time       `json:"date"`
	Sender      string          `json:"sender,omitempty"`
	Recipient   string          `json:"recipient,omitempty"`
}

type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	Sender      string          `json:"sender"`
	Recipient   string          `json:"recipient"`
}

type UpdateTransactionRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Type        *string          `json:"type"`
	Status      *string          `json:"status"`
	Sender      *string          `json:"sender"`
	Recipient   *string          `json:"recipient"`
}

type CreateTransactionResponse struct {
	ID          string      `json:"id"`
	Transaction Transaction `json:"transaction"`
}

func (CreateTransactionResponse) StatusCode() int {
	return http.StatusCreated
}

func (CreateTransactionResponse) Message() string {
	return "transaction created"
}

type TransactionResponse struct {
	Transaction
	message string
}

func (r TransactionResponse) Message() string {
	if r.message == "" {
		return "request has been successfully"
	}
	return r.message
}

type TransactionListResponse struct {
	Transactions []Transaction `json:"transactions"`
	message      string
	total        int
	filtered     int
}

func (r TransactionListResponse) Message() string {
	if r.message == "" {
		return "request has been successfully"
	}
	return r.message
}

func (r TransactionListResponse) Meta() map[string]any {
	return map[string]any{
		"total":    r.total,
		"filtered": r.filtered,
	}
}

type StatsResponse struct {
	Currency        string          `json:"currency"`
	Total           int             `json:"total"`
	Balance         decimal.Decimal `json:"balance"`
	Deposits        decimal.Decimal `json:"deposits"`
	Withdrawals     decimal.Decimal `json:"withdrawals"`
	Transfers       decimal.Decimal `json:"transfers"`
	DepositCount    int             `json:"deposit_count"`
	WithdrawalCount int             `json:"withdrawal_count"`
	TransferCount   int             `json:"transfer_count"`
	Formatted       FormattedStats  `json:"formatted"`
}

type FormattedStats struct {
	Balance     string `json:"balance"`
	Deposits    string `json:"deposits"`
	Withdrawals string `json:"withdrawals"`
	Transfers   string `json:"transfers"`
}

type StateResponse struct {
	IsLoading bool    `json:"is_loading"`
	Error     *string `json:"error"`
}
