package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/renjieQ/financial-transaction-records/internal/ledger"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.ledger.enabled") {
		closer, err := ledger.New(ledger.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			ID:        a.ledgerID,
		})
		if err != nil {
			slog.Error("failed to init module ledger", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Ledger"] = closer
		}
	}
}
