package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, done chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handler")
	}
}

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})

	bus.Subscribe(EventTypeFavorsChanged, func(ctx context.Context, event Event) {
		changed, ok := event.(FavorsChangedEvent)
		assert.True(t, ok)
		assert.Equal(t, int64(123456), changed.DiscordID)
		assert.Equal(t, int64(5), changed.Delta)
		close(done)
	})

	bus.Emit(context.Background(), FavorsChangedEvent{DiscordID: 123456, Delta: 5})
	waitFor(t, done)
}

func TestBus_EmitSkipsOtherEventTypes(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})

	var mu sync.Mutex
	var favorsCalls int

	bus.Subscribe(EventTypeFavorsChanged, func(ctx context.Context, event Event) {
		mu.Lock()
		favorsCalls++
		mu.Unlock()
	})
	bus.Subscribe(EventTypeNominationAdded, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), NominationAddedEvent{NominationID: 1})
	waitFor(t, done)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, favorsCalls)
}

func TestBus_HandlerPanicDoesNotPoisonOthers(t *testing.T) {
	bus := NewBus()
	done := make(chan struct{})

	bus.Subscribe(EventTypeFavorsChanged, func(ctx context.Context, event Event) {
		panic("handler blew up")
	})
	bus.Subscribe(EventTypeFavorsChanged, func(ctx context.Context, event Event) {
		close(done)
	})

	bus.Emit(context.Background(), FavorsChangedEvent{DiscordID: 1, Delta: 1})
	waitFor(t, done)
}

func TestTransactionalBus_FlushEmitsStashedEvents(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	var mu sync.Mutex
	var received []Event
	done := make(chan struct{})

	bus.Subscribe(EventTypeFavorsChanged, func(ctx context.Context, event Event) {
		mu.Lock()
		received = append(received, event)
		if len(received) == 2 {
			close(done)
		}
		mu.Unlock()
	})

	txBus.Publish(FavorsChangedEvent{DiscordID: 1, Delta: 5})
	txBus.Publish(FavorsChangedEvent{DiscordID: 2, Delta: -3})

	// Nothing reaches subscribers until the flush
	mu.Lock()
	assert.Empty(t, received)
	mu.Unlock()

	txBus.Flush(context.Background())
	waitFor(t, done)
}

func TestTransactionalBus_DiscardDropsStashedEvents(t *testing.T) {
	bus := NewBus()
	txBus := NewTransactionalBus(bus)

	var mu sync.Mutex
	var calls int

	bus.Subscribe(EventTypeFavorsChanged, func(ctx context.Context, event Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	txBus.Publish(FavorsChangedEvent{DiscordID: 1, Delta: 5})
	txBus.Discard()
	txBus.Flush(context.Background())

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, calls)
}
