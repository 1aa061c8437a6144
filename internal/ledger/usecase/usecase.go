package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkgerror"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkglog"
	"github.com/renjieQ/financial-transaction-records/internal/pkg/pkguid"
)

type Store interface {
	Create(input entity.TransactionInput) string
	Update(id string, patch entity.TransactionPatch) bool
	Delete(id string) bool
	Get(id string) (entity.Transaction, bool)
	ClearAll()
	Restore(snapshot []entity.Transaction)
	SetLoading(loading bool)
	SetError(err error)
	Transactions() []entity.Transaction
	Len() int
	IsLoading() bool
	Err() error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.ChangeEvent) error
}

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Store     Store
	Events    EventPublisher
	Clock     Clock
	ID        pkguid.StringID
	SeedDelay time.Duration
}

// Usecase is the single writer of the store. Every store call happens while
// holding mu, so concurrent HTTP requests observe each operation and its
// last-error as one step.
type Usecase struct {
	mu        sync.Mutex
	store     Store
	events    EventPublisher
	clock     Clock
	id        pkguid.StringID
	seedDelay time.Duration
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	return &Usecase{
		store:     dep.Store,
		events:    dep.Events,
		clock:     clock,
		id:        dep.ID,
		seedDelay: dep.SeedDelay,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (u *Usecase) Create(ctx context.Context, input entity.TransactionInput) (entity.Transaction, error) {
	u.mu.Lock()
	id := u.store.Create(input)
	if id == "" {
		err := u.store.Err()
		u.mu.Unlock()
		return entity.Transaction{}, rejected(ctx, "create", err)
	}
	tx, _ := u.store.Get(id)
	u.mu.Unlock()

	u.publish(ctx, entity.ChangeCreated, id)

	return tx, nil
}

// Update applies patch through the store. An empty patch succeeds without
// publishing a change event.
func (u *Usecase) Update(ctx context.Context, id string, patch entity.TransactionPatch) (entity.Transaction, error) {
	ctx = pkglog.SetTransactionID(ctx, id)

	u.mu.Lock()
	if !u.store.Update(id, patch) {
		err := u.store.Err()
		u.mu.Unlock()
		return entity.Transaction{}, rejected(ctx, "update", err)
	}
	tx, _ := u.store.Get(id)
	u.mu.Unlock()

	if !patch.IsEmpty() {
		u.publish(ctx, entity.ChangeUpdated, id)
	}

	return tx, nil
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	ctx = pkglog.SetTransactionID(ctx, id)

	u.mu.Lock()
	if !u.store.Delete(id) {
		err := u.store.Err()
		u.mu.Unlock()
		return rejected(ctx, "delete", err)
	}
	u.mu.Unlock()

	u.publish(ctx, entity.ChangeDeleted, id)

	return nil
}

func (u *Usecase) Get(ctx context.Context, id string) (entity.Transaction, error) {
	u.mu.Lock()
	tx, ok := u.store.Get(id)
	u.mu.Unlock()

	if !ok {
		return entity.Transaction{}, pkgerror.NewNotFound("Transaction with ID " + id + " not found")
	}

	return tx, nil
}

// List returns the filtered and sorted view over the current collection.
func (u *Usecase) List(ctx context.Context, filter Filter) ListResult {
	u.mu.Lock()
	all := u.store.Transactions()
	u.mu.Unlock()

	view := Apply(all, filter)

	return ListResult{
		Transactions: view,
		Total:        len(all),
		Filtered:     len(view),
	}
}

func (u *Usecase) Summary(ctx context.Context) entity.Summary {
	u.mu.Lock()
	all := u.store.Transactions()
	u.mu.Unlock()

	return Summarize(all)
}

func (u *Usecase) ClearAll(ctx context.Context) {
	u.mu.Lock()
	u.store.ClearAll()
	u.mu.Unlock()

	u.publish(ctx, entity.ChangeCleared, "")
}

// Reset replaces the collection with the sample data set. If the samples
// cannot all be added the previous collection is put back.
func (u *Usecase) Reset(ctx context.Context) ([]entity.Transaction, error) {
	u.mu.Lock()
	before := u.store.Transactions()
	u.store.ClearAll()
	err := u.addSamples()
	if err != nil {
		u.store.Restore(before)
	}
	all := u.store.Transactions()
	u.mu.Unlock()

	if err != nil {
		return nil, rejected(ctx, "reset", err)
	}

	u.publish(ctx, entity.ChangeReset, "")

	return all, nil
}

func (u *Usecase) State(ctx context.Context) StateResult {
	u.mu.Lock()
	defer u.mu.Unlock()

	return StateResult{
		Loading: u.store.IsLoading(),
		Error:   u.store.Err(),
	}
}

func (u *Usecase) SetLoading(ctx context.Context, loading bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.store.SetLoading(loading)
}

// SetError sets the store's last error to msg; nil clears it.
func (u *Usecase) SetError(ctx context.Context, msg *string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if msg == nil {
		u.store.SetError(nil)
		return
	}
	u.store.SetError(errors.New(*msg))
}

// Seed simulates an initial fetch: the store is flagged as loading for the
// configured delay, then populated with the sample data if it is still empty.
// The delay is only cut short by ctx, which is the application's root context.
func (u *Usecase) Seed(ctx context.Context) error {
	u.SetLoading(ctx, true)
	defer u.SetLoading(ctx, false)

	if u.seedDelay > 0 {
		timer := time.NewTimer(u.seedDelay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	u.mu.Lock()
	if u.store.Len() > 0 {
		u.mu.Unlock()
		slog.InfoContext(ctx, "ledger already populated, skip seeding")
		return nil
	}
	err := u.addSamples()
	if err != nil {
		u.store.Restore(nil)
	}
	u.mu.Unlock()

	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "ledger seeded with sample transactions", "count", len(SampleTransactions()))
	u.publish(ctx, entity.ChangeReset, "")

	return nil
}

// addSamples appends the sample set. On failure the caller rolls back with
// Restore; the store keeps the failure as its last error. It must be called
// with mu held.
func (u *Usecase) addSamples() error {
	for _, input := range SampleTransactions() {
		if id := u.store.Create(input); id == "" {
			return u.store.Err()
		}
	}
	return nil
}

func (u *Usecase) publish(ctx context.Context, kind entity.ChangeKind, txID string) {
	if u.events == nil {
		return
	}

	event := entity.ChangeEvent{
		Kind:          kind,
		TransactionID: txID,
		At:            u.clock.Now(),
	}
	if u.id != nil {
		event.EventID = u.id.Generate()
	}

	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(pkglog.SetTransactionID(ctx, txID), "failed to publish change event", "kind", kind, "error", err)
	}
}

func rejected(ctx context.Context, op string, err error) error {
	if err == nil {
		err = pkgerror.NewServer(errors.New("store rejected " + op + " without an error"))
	}

	slog.WarnContext(ctx, "transaction rejected", "op", op, "error", err)

	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
