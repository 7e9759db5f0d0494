package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
	"github.com/obelixq/obelixq/services/booking-service/internal/outbox"
)

func TestOutboxCheckUsesEffectiveCapacity(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ev := ledger.Event{
		Type:        ledger.EventReserved,
		Appointment: model.Appointment{ID: "a", Status: model.StatusPending, ScheduledAt: time.Now()},
		OccurredAt:  time.Now(),
	}

	// A non-positive size falls back to the default queue, and the check must follow it.
	p := outbox.NewPublisher(logger, outbox.PublisherConfig{QueueSize: 0})
	if err := outboxCheck(p)(context.Background()); err != nil {
		t.Fatalf("empty queue should be ready: %v", err)
	}

	small := outbox.NewPublisher(logger, outbox.PublisherConfig{QueueSize: 10})
	for i := 0; i < 8; i++ {
		_ = small.Publish(context.Background(), ev)
	}
	if err := outboxCheck(small)(context.Background()); err != nil {
		t.Fatalf("queue at 8/10 should be ready: %v", err)
	}
	_ = small.Publish(context.Background(), ev)
	if err := outboxCheck(small)(context.Background()); err == nil {
		t.Fatal("queue at 9/10 should fail readiness")
	}
}
