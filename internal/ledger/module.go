package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/event"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/inbound"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/store"
	"github.com/renjieQ/financial-transaction-records/internal/ledger/usecase"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgconfig"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgmoney"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgrouter"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgroutine"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	if dep.Config == nil || dep.Router == nil {
		return nil, errors.New("ledger: config and router are required")
	}

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	currency := dep.Config.GetString("modules.ledger.currency")
	if currency == "" {
		currency = pkgmoney.DefaultCurrency
	}

	bus := event.NewBus(512)
	consumer := event.NewNotificationConsumer(bus, event.LogNotifier{}, event.ConsumerConfig{
		Workers:     int(dep.Config.GetInt("modules.ledger.notifier.workers")),
		MaxRetries:  int(dep.Config.GetInt("modules.ledger.notifier.max_retries")),
		BaseBackoff: dep.Config.GetDuration("modules.ledger.notifier.base_backoff"),
		DedupWindow: int(dep.Config.GetInt("modules.ledger.notifier.dedup_window")),
	})
	consumer.Start()

	uc := usecase.New(usecase.Dependency{
		Store:     store.NewInMemoryStore(store.Dependency{ID: dep.ID}),
		Events:    bus,
		ID:        dep.ID,
		SeedDelay: dep.Config.GetDuration("modules.ledger.seed.delay"),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, currency)

	if dep.Config.GetBool("modules.ledger.seed.enabled") && dep.Goroutine != nil {
		root := dep.Context
		if root == nil {
			root = context.Background()
		}

		dep.Goroutine.Go(root, "ledger-seed", func(ctx context.Context) error {
			if err := uc.Seed(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.ErrorContext(ctx, "failed to seed ledger", "error", err)
				return err
			}
			return nil
		})
	}

	return consumer.Stop, nil
}
