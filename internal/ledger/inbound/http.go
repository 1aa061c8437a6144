package inbound

import (
	"context"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/usecase"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgrouter"
)

type uc interface {
	Create(ctx context.Context, input entity.TransactionInput) (entity.Transaction, error)
	Update(ctx context.Context, id string, patch entity.TransactionPatch) (entity.Transaction, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (entity.Transaction, error)
	List(ctx context.Context, filter usecase.Filter) usecase.ListResult
	Summary(ctx context.Context) entity.Summary
	ClearAll(ctx context.Context)
	Reset(ctx context.Context) ([]entity.Transaction, error)
	State(ctx context.Context) usecase.StateResult
	SetLoading(ctx context.Context, loading bool)
	SetError(ctx context.Context, msg *string)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc, currency string) {
	end := &HTTPEndpoint{uc: uc, currency: currency}

	r.GET("/transactions", end.ListTransactions) // ?type=&status=&search=&sort_by=&sort_direction=
	r.POST("/transactions", end.CreateTransaction, pkgrouter.RequireJSON)
	r.DELETE("/transactions", end.ClearTransactions)
	r.GET("/transactions/:id", end.GetTransaction)
	r.PATCH("/transactions/:id", end.UpdateTransaction, pkgrouter.RequireJSON)
	r.DELETE("/transactions/:id", end.DeleteTransaction)

	r.POST("/reset", end.Reset)
	r.GET("/stats", end.Stats)
	r.GET("/state", end.State)
	r.PUT("/state", end.SetState, pkgrouter.RequireJSON)
}
