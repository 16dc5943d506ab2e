package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cducote/pawstock-backend/pkg/enums"
	"github.com/cducote/pawstock-backend/pkg/logger"
)

type capturingPublisher struct {
	channel string
	payload []byte
	err     error
}

func (p *capturingPublisher) Publish(_ context.Context, channel string, payload any) error {
	p.channel = channel
	p.payload, _ = payload.([]byte)
	return p.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Level: zerolog.ErrorLevel, Output: io.Discard})
}

func sampleEvent() VariantChanged {
	return VariantChanged{
		VariantID:       uuid.New(),
		ProductID:       uuid.New(),
		TransactionID:   uuid.New(),
		TransactionType: enums.TransactionTypeSold,
		CurrentStock:    7,
		OccurredAt:      time.Now().UTC(),
	}
}

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus(testLogger(), "", nil)

	var got []VariantChanged
	bus.Subscribe(func(_ context.Context, event VariantChanged) {
		got = append(got, event)
	})
	bus.Subscribe(nil) // ignored

	event := sampleEvent()
	bus.Publish(context.Background(), event)

	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	if got[0].VariantID != event.VariantID || got[0].CurrentStock != 7 {
		t.Fatalf("unexpected event: %+v", got[0])
	}
}

func TestBusPublishesToExternalChannel(t *testing.T) {
	pub := &capturingPublisher{}
	bus := NewBus(testLogger(), "pawstock:events:stock", pub)

	event := sampleEvent()
	bus.Publish(context.Background(), event)

	if pub.channel != "pawstock:events:stock" {
		t.Fatalf("unexpected channel %q", pub.channel)
	}

	var decoded VariantChanged
	if err := json.Unmarshal(pub.payload, &decoded); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if decoded.TransactionType != enums.TransactionTypeSold {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestBusPublisherErrorDoesNotPropagate(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("redis down")}
	bus := NewBus(testLogger(), "pawstock:events:stock", pub)

	delivered := false
	bus.Subscribe(func(_ context.Context, _ VariantChanged) { delivered = true })

	bus.Publish(context.Background(), sampleEvent())

	if !delivered {
		t.Fatal("in-process delivery should not depend on the external publisher")
	}
}
