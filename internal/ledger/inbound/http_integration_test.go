package inbound

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/event"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/store"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/usecase"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgrouter"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkguid"
)

type envelope[T any] struct {
	Message string         `json:"message"`
	Data    T              `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	bus := event.NewBus(64)
	consumer := event.NewNotificationConsumer(bus, event.LogNotifier{}, event.ConsumerConfig{Workers: 1})
	consumer.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := consumer.Stop(ctx); err != nil {
			t.Errorf("stop consumer: %v", err)
		}
	})

	uc := usecase.New(usecase.Dependency{
		Store:  store.NewInMemoryStore(store.Dependency{ID: pkguid.NewUUID()}),
		Events: bus,
		ID:     pkguid.NewUUID(),
	})

	router := pkgrouter.NewRouter(pkguid.NewUUID())
	RegisterHTTPEndpoint(router, uc, "USD")

	return router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var env envelope[T]
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestTransactionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/transactions", map[string]any{
		"amount":      "89.99",
		"description": "Grocery shopping",
		"type":        "withdrawal",
		"status":      "completed",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	created := decode[CreateTransactionResponse](t, rec)
	id := created.Data.ID
	if id == "" || created.Data.Transaction.Description != "Grocery shopping" {
		t.Fatalf("unexpected create response: %+v", created.Data)
	}

	rec = do(t, router, http.MethodPatch, "/transactions/"+id, map[string]any{"amount": 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	updated := decode[Transaction](t, rec)
	if updated.Data.Amount.String() != "10" {
		t.Fatalf("updated amount = %s, want 10", updated.Data.Amount)
	}

	rec = do(t, router, http.MethodPatch, "/transactions/"+id, map[string]any{"amount": -1})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid update status = %d", rec.Code)
	}
	errEnv := decode[any](t, rec)
	if errEnv.Message != store.MsgAmountNotPositive {
		t.Fatalf("invalid update message = %q", errEnv.Message)
	}

	rec = do(t, router, http.MethodGet, "/transactions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	got := decode[Transaction](t, rec)
	if got.Data.Amount.String() != "10" {
		t.Fatalf("amount after rejected update = %s, want 10", got.Data.Amount)
	}

	rec = do(t, router, http.MethodGet, "/state", nil)
	state := decode[StateResponse](t, rec)
	if state.Data.Error == nil || *state.Data.Error != store.MsgAmountNotPositive {
		t.Fatalf("state error = %v", state.Data.Error)
	}

	rec = do(t, router, http.MethodDelete, "/transactions/"+id, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodDelete, "/transactions/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d", rec.Code)
	}
	errEnv = decode[any](t, rec)
	if errEnv.Message != "Transaction with ID "+id+" not found" {
		t.Fatalf("second delete message = %q", errEnv.Message)
	}
}

func TestCreateValidation(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body map[string]any
		code int
	}{
		{name: "missing amount", body: map[string]any{"description": "x", "type": "deposit"}, code: http.StatusUnprocessableEntity},
		{name: "transfer without parties", body: map[string]any{"amount": 5, "description": "x", "type": "transfer", "sender": "A"}, code: http.StatusUnprocessableEntity},
		{name: "unknown type", body: map[string]any{"amount": 5, "description": "x", "type": "credit"}, code: http.StatusUnprocessableEntity},
		{name: "unknown field", body: map[string]any{"amount": 5, "description": "x", "type": "deposit", "date": "2020-01-01"}, code: http.StatusBadRequest},
	}

	for _, tc := range cases {
		rec := do(t, router, http.MethodPost, "/transactions", tc.body)
		if rec.Code != tc.code {
			t.Fatalf("%s: status = %d, want %d (body %s)", tc.name, rec.Code, tc.code, rec.Body.String())
		}
	}

	rec := do(t, router, http.MethodGet, "/transactions", nil)
	list := decode[TransactionListResponse](t, rec)
	if len(list.Data.Transactions) != 0 {
		t.Fatalf("rejected creates left %d records", len(list.Data.Transactions))
	}
}

func TestListFiltersAndStats(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/transactions?type=withdrawal&sort_by=amount&sort_direction=asc", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	list := decode[TransactionListResponse](t, rec)
	if len(list.Data.Transactions) != 2 {
		t.Fatalf("withdrawals = %d, want 2", len(list.Data.Transactions))
	}
	if list.Data.Transactions[0].Description != "Grocery shopping" {
		t.Fatalf("first withdrawal = %q", list.Data.Transactions[0].Description)
	}
	if list.Meta["total"] != float64(5) || list.Meta["filtered"] != float64(2) {
		t.Fatalf("meta = %v", list.Meta)
	}

	rec = do(t, router, http.MethodGet, "/transactions?search=JOHN", nil)
	list = decode[TransactionListResponse](t, rec)
	if len(list.Data.Transactions) != 1 || list.Data.Transactions[0].Description != "Friend payment" {
		t.Fatalf("search result = %+v", list.Data.Transactions)
	}

	rec = do(t, router, http.MethodGet, "/transactions?sort_by=size", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid sort status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/stats", nil)
	stats := decode[StatsResponse](t, rec)
	if stats.Data.Total != 5 {
		t.Fatalf("stats total = %d", stats.Data.Total)
	}
	if stats.Data.Formatted.Balance != "$1,160.01" {
		t.Fatalf("formatted balance = %q", stats.Data.Formatted.Balance)
	}
	if stats.Data.WithdrawalCount != 2 || stats.Data.TransferCount != 2 {
		t.Fatalf("counts = %+v", stats.Data)
	}

	rec = do(t, router, http.MethodDelete, "/transactions", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d", rec.Code)
	}
	rec = do(t, router, http.MethodGet, "/stats", nil)
	stats = decode[StatsResponse](t, rec)
	if stats.Data.Total != 0 || stats.Data.Formatted.Balance != "$0.00" {
		t.Fatalf("stats after clear = %+v", stats.Data)
	}
}

func TestSetState(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPut, "/state", map[string]any{"is_loading": true, "error": "offline"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set state status = %d", rec.Code)
	}
	state := decode[StateResponse](t, rec)
	if !state.Data.IsLoading || state.Data.Error == nil || *state.Data.Error != "offline" {
		t.Fatalf("state = %+v", state.Data)
	}

	rec = do(t, router, http.MethodPut, "/state", map[string]any{"error": nil})
	state = decode[StateResponse](t, rec)
	if !state.Data.IsLoading || state.Data.Error != nil {
		t.Fatalf("state after clearing error = %+v", state.Data)
	}

	rec = do(t, router, http.MethodPut, "/state", map[string]any{"loading": false})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown key status = %d", rec.Code)
	}
}

func TestCreateRejectsNonJSONBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("amount=10"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", rec.Code, rec.Body.String())
	}

	list := decode[TransactionListResponse](t, do(t, router, http.MethodGet, "/transactions", nil))
	if len(list.Data.Transactions) != 0 {
		t.Fatalf("expected nothing created, got %d", len(list.Data.Transactions))
	}
}

func TestRejectedRequestsRecordLastError(t *testing.T) {
	router := newTestRouter(t)

	stateError := func(t *testing.T) *string {
		t.Helper()
		return decode[StateResponse](t, do(t, router, http.MethodGet, "/state", nil)).Data.Error
	}

	rec := do(t, router, http.MethodPost, "/transactions", map[string]any{"amount": -1, "description": "x", "type": "deposit"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("negative create status = %d", rec.Code)
	}

	rec = do(t, router, http.MethodPost, "/transactions", map[string]any{"amount": 12, "description": "Lunch", "type": "withdrawal"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	id := decode[CreateTransactionResponse](t, rec).Data.ID
	if msg := stateError(t); msg != nil {
		t.Fatalf("successful create left error %q", *msg)
	}

	rec = do(t, router, http.MethodPost, "/transactions", map[string]any{"amount": -1, "description": "x", "type": "bogus"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bogus create status = %d", rec.Code)
	}
	if env := decode[any](t, rec); env.Message != store.MsgAmountNotPositive {
		t.Fatalf("bogus create message = %q, want the amount rule first", env.Message)
	}
	if msg := stateError(t); msg == nil || *msg != store.MsgAmountNotPositive {
		t.Fatalf("state error after bogus create = %v", msg)
	}

	rec = do(t, router, http.MethodPost, "/transactions", map[string]any{"amount": 5, "description": "x", "type": "credit"})
	if env := decode[any](t, rec); rec.Code != http.StatusUnprocessableEntity || env.Message != store.MsgTypeUnknown {
		t.Fatalf("unknown type create = %d %q", rec.Code, env.Message)
	}
	if msg := stateError(t); msg == nil || *msg != store.MsgTypeUnknown {
		t.Fatalf("state error after unknown type = %v", msg)
	}

	rec = do(t, router, http.MethodPatch, "/transactions/"+id, map[string]any{"status": "settled"})
	if env := decode[any](t, rec); rec.Code != http.StatusUnprocessableEntity || env.Message != store.MsgStatusUnknown {
		t.Fatalf("unknown status update = %d %q", rec.Code, env.Message)
	}
	if msg := stateError(t); msg == nil || *msg != store.MsgStatusUnknown {
		t.Fatalf("state error after unknown status = %v", msg)
	}

	got := decode[Transaction](t, do(t, router, http.MethodGet, "/transactions/"+id, nil))
	if got.Data.Status != entity.TxStatusCompleted {
		t.Fatalf("rejected update changed status to %q", got.Data.Status)
	}
}

func TestListDescriptionLocale(t *testing.T) {
	router := newTestRouter(t)

	for _, desc := range []string{"Zebra crossing fine", "Äpple market"} {
		rec := do(t, router, http.MethodPost, "/transactions", map[string]any{"amount": 1, "description": desc, "type": "withdrawal"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %q status = %d", desc, rec.Code)
		}
	}

	order := func(t *testing.T, query string) []string {
		t.Helper()
		rec := do(t, router, http.MethodGet, "/transactions?sort_by=description&sort_direction=asc"+query, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list%s status = %d", query, rec.Code)
		}
		var out []string
		for _, tx := range decode[TransactionListResponse](t, rec).Data.Transactions {
			out = append(out, tx.Description)
		}
		return out
	}

	if got := order(t, ""); got[0] != "Äpple market" {
		t.Fatalf("default order = %v", got)
	}
	if got := order(t, "&locale=sv"); got[0] != "Zebra crossing fine" {
		t.Fatalf("swedish order = %v", got)
	}

	rec := do(t, router, http.MethodGet, "/transactions?locale=!!", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid locale status = %d", rec.Code)
	}
}
