package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cducote/pawstock-backend/pkg/enums"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

// VariantChanged is emitted after a stock movement commits. Consumers
// receive the final counter value, not a delta, so a missed event is
// corrected by the next one.
type VariantChanged struct {
	VariantID       uuid.UUID             `json:"variant_id"`
	ProductID       uuid.UUID             `json:"product_id"`
	TransactionID   uuid.UUID             `json:"transaction_id"`
	TransactionType enums.TransactionType `json:"transaction_type"`
	CurrentStock    int                   `json:"current_stock"`
	Clamped         bool                  `json:"clamped"`
	OccurredAt      time.Time             `json:"occurred_at"`
}

// Handler consumes stock change events. Handlers must not block; slow
// consumers should hand off to their own goroutine.
type Handler func(ctx context.Context, event VariantChanged)

// Publisher forwards events to an external channel, such as Redis pub/sub.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Bus fans stock change events out to in-process subscribers and, when
// configured, an external publisher. Publish never fails the caller:
// the movement is already committed by the time an event fires.
type Bus struct {
	logg    *logger.Logger
	channel string

	mu        sync.RWMutex
	handlers  []Handler
	publisher Publisher
}

// NewBus builds an event bus. The publisher is optional.
func NewBus(logg *logger.Logger, channel string, publisher Publisher) *Bus {
	return &Bus{
		logg:      logg,
		channel:   channel,
		publisher: publisher,
	}
}

// Subscribe registers an in-process handler for stock change events.
func (b *Bus) Subscribe(handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish delivers the event to all subscribers and the external
// channel. Delivery errors are logged, never returned.
func (b *Bus) Publish(ctx context.Context, event VariantChanged) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers))
	copy(handlers, b.handlers)
	publisher := b.publisher
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, event)
	}

	if publisher == nil || b.channel == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		b.logg.Error(ctx, "marshaling stock event", err)
		return
	}
	if err := publisher.Publish(ctx, b.channel, payload); err != nil {
		b.logg.Error(ctx, "publishing stock event", err)
	}
}
