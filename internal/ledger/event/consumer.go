package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

// Notifier delivers a change event to whoever should hear about it.
type Notifier interface {
	Notify(ctx context.Context, event entity.ChangeEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// DedupWindow is how many recent event ids are remembered for
	// duplicate suppression.
	DedupWindow int
}

const defaultDedupWindow = 4096

// NotificationConsumer drains the bus with a fixed worker pool. Each event is
// delivered at most once per EventID among the last DedupWindow ids, retried
// with exponential backoff.
type NotificationConsumer struct {
	bus         *Bus
	notifier    Notifier
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *recentIDs
	wg          sync.WaitGroup
}

func NewNotificationConsumer(bus *Bus, notifier Notifier, cfg ConsumerConfig) *NotificationConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	window := cfg.DedupWindow
	if window < 1 {
		window = defaultDedupWindow
	}

	return &NotificationConsumer{
		bus:         bus,
		notifier:    notifier,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
		seen:        newRecentIDs(window),
	}
}

func (c *NotificationConsumer) Start() {
	for range c.workers {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for the workers to drain it.
func (c *NotificationConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *NotificationConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *NotificationConsumer) processEvent(event entity.ChangeEvent) {
	if c.notifier == nil {
		return
	}

	if event.EventID != "" {
		if !c.seen.add(event.EventID) {
			slog.Info("skip duplicate change event", "event_id", event.EventID, "kind", event.Kind)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.notifier.Notify(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to deliver change notification after retries", "event_id", event.EventID, "kind", event.Kind, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

// recentIDs remembers the last size ids added, evicting the oldest first.
type recentIDs struct {
	mu    sync.Mutex
	size  int
	ids   map[string]struct{}
	order []string
	next  int
}

func newRecentIDs(size int) *recentIDs {
	return &recentIDs{
		size:  size,
		ids:   make(map[string]struct{}, size),
		order: make([]string, 0, size),
	}
}

// add records id and reports whether it was new.
func (r *recentIDs) add(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ids[id]; ok {
		return false
	}

	if len(r.order) < r.size {
		r.order = append(r.order, id)
	} else {
		delete(r.ids, r.order[r.next])
		r.order[r.next] = id
		r.next = (r.next + 1) % r.size
	}
	r.ids[id] = struct{}{}

	return true
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// LogNotifier writes every change as a structured log line.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, event entity.ChangeEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	slog.InfoContext(ctx, notificationTitle(event.Kind),
		"event_id", event.EventID,
		"transaction_id", event.TransactionID,
		"at", event.At,
	)
	return nil
}

func notificationTitle(kind entity.ChangeKind) string {
	switch kind {
	case entity.ChangeCreated:
		return "transaction created"
	case entity.ChangeUpdated:
		return "transaction updated"
	case entity.ChangeDeleted:
		return "transaction deleted"
	case entity.ChangeCleared:
		return "transactions cleared"
	case entity.ChangeReset:
		return "transaction data reset"
	default:
		return "ledger changed"
	}
}
