package event

import (
	"context"
	"errors"
	"sync"

	"github.com/renjieQ/financial-transaction-records/internal/ledger/entity"
)

var ErrBusClosed = errors.New("event bus is closed")

// Bus is a buffered in-process channel of ledger change events.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.ChangeEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.ChangeEvent, buffer),
	}
}

// Publish enqueues event, blocking while the buffer is full until ctx is done.
func (b *Bus) Publish(ctx context.Context, event entity.ChangeEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case b.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) Subscribe() <-chan entity.ChangeEvent {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}
