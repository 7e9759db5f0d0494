package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/obelixq/obelixq/libs/kafkax"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu      sync.Mutex
	msgs    []kafka.Message
	failFor int
	got     chan struct{}
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failFor > 0 {
		w.failFor--
		return errors.New("leader not available")
	}
	w.msgs = append(w.msgs, msgs...)
	w.got <- struct{}{}
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleEvent(id string) ledger.Event {
	return ledger.Event{
		Type: ledger.EventReserved,
		Appointment: model.Appointment{
			ID: id, UserID: "user1", BusinessID: "1", ServiceID: "s1",
			ScheduledAt: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
			Status:      model.StatusPending,
		},
		OccurredAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestPublishQueueFull(t *testing.T) {
	p := NewPublisher(testLogger(), PublisherConfig{QueueSize: 1})
	if err := p.Publish(context.Background(), sampleEvent("a")); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if err := p.Publish(context.Background(), sampleEvent("b")); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
	if p.Pending() != 1 {
		t.Fatalf("pending = %d", p.Pending())
	}
}

func TestCapacityDefaults(t *testing.T) {
	if got := NewPublisher(testLogger(), PublisherConfig{QueueSize: -3}).Capacity(); got != 1024 {
		t.Fatalf("capacity = %d, want 1024", got)
	}
	if got := NewPublisher(testLogger(), PublisherConfig{QueueSize: 8}).Capacity(); got != 8 {
		t.Fatalf("capacity = %d, want 8", got)
	}
}

func TestRunWritesMessages(t *testing.T) {
	w := &fakeWriter{failFor: 1, got: make(chan struct{}, 4)}
	p := NewPublisher(testLogger(), PublisherConfig{QueueSize: 4, RetryEvery: time.Millisecond})
	p.writer = w

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	if err := p.Publish(ctx, sampleEvent("appt-1")); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.got:
	case <-time.After(2 * time.Second):
		t.Fatal("message not written")
	}
	cancel()
	<-done

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.msgs) != 1 {
		t.Fatalf("wrote %d messages", len(w.msgs))
	}
	msg := w.msgs[0]
	if msg.Topic != ledger.EventReserved || string(msg.Key) != "appt-1" {
		t.Fatalf("unexpected message topic=%s key=%s", msg.Topic, msg.Key)
	}
	meta := kafkax.ExtractEventMeta(msg)
	if meta.EventType != ledger.EventReserved || meta.EventID == "" {
		t.Fatalf("unexpected meta %+v", meta)
	}
	var body map[string]any
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "pending" || body["scheduled_at"] != "2025-03-10T14:00:00Z" || body["event_id"] != meta.EventID {
		t.Fatalf("unexpected payload %v", body)
	}
}

func TestRunWithoutBrokersDrains(t *testing.T) {
	p := NewPublisher(testLogger(), PublisherConfig{QueueSize: 2})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	_ = p.Publish(ctx, sampleEvent("a"))
	_ = p.Publish(ctx, sampleEvent("b"))
	deadline := time.Now().Add(2 * time.Second)
	for p.Pending() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done
	if p.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", p.Pending())
	}
}
