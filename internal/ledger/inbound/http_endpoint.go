package inbound

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/usecase"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgerror"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgmoney"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgrouter"
)

const maxBodyBytes = 1 << 20

type HTTPEndpoint struct {
	uc       uc
	currency string
}

func (h *HTTPEndpoint) ListTransactions(ctx context.Context, r *http.Request) (any, error) {
	filter, err := parseFilter(r)
	if err != nil {
		return nil, err
	}

	result := h.uc.List(ctx, filter)

	return TransactionListResponse{
		Transactions: toHTTPTransactions(result.Transactions),
		total:        result.Total,
		filtered:     result.Filtered,
	}, nil
}

func (h *HTTPEndpoint) CreateTransaction(ctx context.Context, r *http.Request) (any, error) {
	var req CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	// The store rejects unknown enum values and records the failure.
	typ, _ := entity.ParseTxType(req.Type)

	status := entity.TxStatusCompleted
	if strings.TrimSpace(req.Status) != "" {
		status, _ = entity.ParseTxStatus(req.Status)
	}

	tx, err := h.uc.Create(ctx, entity.TransactionInput{
		Amount:      req.Amount,
		Description: req.Description,
		Type:        typ,
		Status:      status,
		Sender:      req.Sender,
		Recipient:   req.Recipient,
	})
	if err != nil {
		return nil, err
	}

	return CreateTransactionResponse{ID: tx.ID, Transaction: toHTTPTransaction(tx)}, nil
}

func (h *HTTPEndpoint) GetTransaction(ctx context.Context, r *http.Request) (any, error) {
	tx, err := h.uc.Get(ctx, pkgrouter.GetParam(ctx, "id"))
	if err != nil {
		return nil, err
	}

	return TransactionResponse{Transaction: toHTTPTransaction(tx)}, nil
}

func (h *HTTPEndpoint) UpdateTransaction(ctx context.Context, r *http.Request) (any, error) {
	var req UpdateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}

	tx, err := h.uc.Update(ctx, pkgrouter.GetParam(ctx, "id"), toPatch(req))
	if err != nil {
		return nil, err
	}

	return TransactionResponse{Transaction: toHTTPTransaction(tx), message: "transaction updated"}, nil
}

func (h *HTTPEndpoint) DeleteTransaction(ctx context.Context, r *http.Request) (any, error) {
	if err := h.uc.Delete(ctx, pkgrouter.GetParam(ctx, "id")); err != nil {
		return nil, err
	}

	return nil, nil
}

func (h *HTTPEndpoint) ClearTransactions(ctx context.Context, r *http.Request) (any, error) {
	h.uc.ClearAll(ctx)

	return nil, nil
}

func (h *HTTPEndpoint) Reset(ctx context.Context, r *http.Request) (any, error) {
	txs, err := h.uc.Reset(ctx)
	if err != nil {
		return nil, err
	}

	return TransactionListResponse{
		Transactions: toHTTPTransactions(txs),
		message:      "transaction data has been reset to default",
		total:        len(txs),
		filtered:     len(txs),
	}, nil
}

func (h *HTTPEndpoint) Stats(ctx context.Context, r *http.Request) (any, error) {
	s := h.uc.Summary(ctx)

	return StatsResponse{
		Currency:        h.currency,
		Total:           s.Total,
		Balance:         s.Balance,
		Deposits:        s.Deposits,
		Withdrawals:     s.Withdrawals,
		Transfers:       s.Transfers,
		DepositCount:    s.DepositCount,
		WithdrawalCount: s.WithdrawalCount,
		TransferCount:   s.TransferCount,
		Formatted: FormattedStats{
			Balance:     pkgmoney.Format(s.Balance, h.currency),
			Deposits:    pkgmoney.Format(s.Deposits, h.currency),
			Withdrawals: pkgmoney.Format(s.Withdrawals, h.currency),
			Transfers:   pkgmoney.Format(s.Transfers, h.currency),
		},
	}, nil
}

func (h *HTTPEndpoint) State(ctx context.Context, r *http.Request) (any, error) {
	return toStateResponse(h.uc.State(ctx)), nil
}

// SetState accepts {"is_loading": bool, "error": string|null}. Absent keys are
// left unchanged; an explicit null error clears it.
func (h *HTTPEndpoint) SetState(ctx context.Context, r *http.Request) (any, error) {
	var raw map[string]json.RawMessage
	if err := decodeJSON(r, &raw); err != nil {
		return nil, err
	}

	for key := range raw {
		if key != "is_loading" && key != "error" {
			return nil, pkgerror.NewInvalidFormat()
		}
	}

	if v, ok := raw["is_loading"]; ok {
		var loading bool
		if err := json.Unmarshal(v, &loading); err != nil {
			return nil, pkgerror.NewInvalidFormat()
		}
		h.uc.SetLoading(ctx, loading)
	}

	if v, ok := raw["error"]; ok {
		var msg *string
		if err := json.Unmarshal(v, &msg); err != nil {
			return nil, pkgerror.NewInvalidFormat()
		}
		h.uc.SetError(ctx, msg)
	}

	return toStateResponse(h.uc.State(ctx)), nil
}

func parseFilter(r *http.Request) (usecase.Filter, error) {
	query := r.URL.Query()
	filter := usecase.DefaultFilter()

	if v := strings.TrimSpace(query.Get("type")); v != "" && !strings.EqualFold(v, usecase.Any) {
		typ, ok := entity.ParseTxType(v)
		if !ok {
			return filter, pkgerror.NewValidation("invalid type filter")
		}
		filter.Type = typ
	}

	if v := strings.TrimSpace(query.Get("status")); v != "" && !strings.EqualFold(v, usecase.Any) {
		status, ok := entity.ParseTxStatus(v)
		if !ok {
			return filter, pkgerror.NewValidation("invalid status filter")
		}
		filter.Status = status
	}

	filter.Search = query.Get("search")

	if v := strings.TrimSpace(query.Get("locale")); v != "" {
		tag, err := language.Parse(v)
		if err != nil {
			return filter, pkgerror.NewValidation("invalid locale")
		}
		filter.Locale = tag
	}

	if v := strings.TrimSpace(query.Get("sort_by")); v != "" {
		key := usecase.SortKey(strings.ToLower(v))
		switch key {
		case usecase.SortByDate, usecase.SortByAmount, usecase.SortByDescription:
			filter.SortBy = key
		default:
			return filter, pkgerror.NewValidation("invalid sort_by")
		}
	}

	if v := strings.TrimSpace(query.Get("sort_direction")); v != "" {
		switch strings.ToLower(v) {
		case "asc", "ascending":
			filter.SortDirection = usecase.SortAscending
		case "desc", "descending":
			filter.SortDirection = usecase.SortDescending
		default:
			return filter, pkgerror.NewValidation("invalid sort_direction")
		}
	}

	return filter, nil
}

func toPatch(req UpdateTransactionRequest) entity.TransactionPatch {
	patch := entity.TransactionPatch{
		Amount:      req.Amount,
		Description: req.Description,
		Sender:      req.Sender,
		Recipient:   req.Recipient,
	}

	if req.Type != nil {
		typ, _ := entity.ParseTxType(*req.Type)
		patch.Type = &typ
	}

	if req.Status != nil {
		status, _ := entity.ParseTxStatus(*req.Status)
		patch.Status = &status
	}

	return patch
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return pkgerror.NewInvalidFormat()
	}

	return nil
}

func toStateResponse(state usecase.StateResult) StateResponse {
	resp := StateResponse{IsLoading: state.Loading}
	if state.Error != nil {
		msg := state.Error.Error()
		resp.Error = &msg
	}
	return resp
}

func toHTTPTransactions(txs []entity.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toHTTPTransaction(tx))
	}
	return out
}

func toHTTPTransaction(tx entity.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Description: tx.Description,
		Type:        tx.Type,
		Status:      tx.Status,
		Date:        tx.Date,
		Sender:      tx.Sender,
		Recipient:   tx.Recipient,
	}
}
