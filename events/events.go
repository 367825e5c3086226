package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"nakamoto/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeFavorsChanged       EventType = "favors_changed"
	EventTypeTransactionResolved EventType = "transaction_resolved"
	EventTypeNominationAdded     EventType = "nomination_added"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// FavorsChangedEvent represents a wallet balance change that occurred
type FavorsChangedEvent struct {
	DiscordID int64
	Delta     int64
}

func (e FavorsChangedEvent) Type() EventType {
	return EventTypeFavorsChanged
}

// TransactionResolvedEvent represents a favor transaction leaving the PENDING state
type TransactionResolvedEvent struct {
	TransactionID     int64
	SenderDiscordID   int64
	ReceiverDiscordID int64
	Amount            int64
	Status            models.TransactionStatus
}

func (e TransactionResolvedEvent) Type() EventType {
	return EventTypeTransactionResolved
}

// NominationAddedEvent represents a newly stored nomination
type NominationAddedEvent struct {
	NominationID int64
	GuildID      int64
	ChannelID    int64
	MessageID    int64
	AuthorID     int64
	Category     string
}

func (e NominationAddedEvent) Type() EventType {
	return EventTypeNominationAdded
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the emitter
	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events until the surrounding database transaction
// commits, then flushes them to the underlying bus. Discarded on rollback.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events; called after a successful commit.
// Uses a background context so handlers outlive the transaction context.
func (b *TransactionalBus) Flush(ctx context.Context) {
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard drops pending events; called after rollback
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
