// Package outbox forwards ledger events to Kafka from a bounded in-memory queue.
package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/obelixq/obelixq/libs/kafkax"
	otelx "github.com/obelixq/obelixq/libs/otel"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/segmentio/kafka-go"
)

var ErrQueueFull = errors.New("outbox queue full")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	queue   chan Record
	logger  *slog.Logger
	brokers []string
	retry   time.Duration
	writer  messageWriter
}

type PublisherConfig struct {
	Brokers    string
	QueueSize  int
	RetryEvery time.Duration
}

func NewPublisher(logger *slog.Logger, cfg PublisherConfig) *Publisher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.RetryEvery <= 0 {
		cfg.RetryEvery = time.Second
	}
	return &Publisher{
		queue:   make(chan Record, cfg.QueueSize),
		logger:  logger,
		brokers: kafkax.SplitBrokers(cfg.Brokers),
		retry:   cfg.RetryEvery,
	}
}

var _ ledger.EventSink = (*Publisher)(nil)

// Publish enqueues ev without blocking.
func (p *Publisher) Publish(ctx context.Context, ev ledger.Event) error {
	rec, err := newRecord(ev, otelx.CaptureTraceContext(ctx))
	if err != nil {
		return err
	}
	select {
	case p.queue <- rec:
		return nil
	default:
		return ErrQueueFull
	}
}

// Capacity is the queue size after defaults are applied.
func (p *Publisher) Capacity() int {
	return cap(p.queue)
}

// Pending reports how many events wait in the queue.
func (p *Publisher) Pending() int {
	return len(p.queue)
}

func (p *Publisher) Run(ctx context.Context) {
	w := p.writer
	if w == nil && len(p.brokers) > 0 {
		w = &kafka.Writer{
			Addr:     kafka.TCP(p.brokers...),
			Balancer: &kafka.Hash{},
		}
	}
	if w == nil {
		p.logger.Warn("outbox publisher disabled (no kafka brokers configured); events are logged and dropped")
		p.drain(ctx)
		return
	}
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-p.queue:
			p.deliver(ctx, w, rec)
		}
	}
}

// deliver retries until the write succeeds or ctx ends.
func (p *Publisher) deliver(ctx context.Context, w messageWriter, rec Record) {
	msgCtx := rec.Trace.Restore(ctx)
	msg := kafka.Message{
		Topic:   rec.EventType,
		Key:     []byte(rec.AggregateID),
		Value:   rec.Payload,
		Headers: kafkax.EventMeta{EventID: rec.EventID, EventType: rec.EventType}.Headers(msgCtx),
	}
	for {
		err := w.WriteMessages(ctx, msg)
		if err == nil {
			return
		}
		p.logger.Error("outbox publish failed", "err", err, "event_type", rec.EventType, "event_id", rec.EventID)
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.retry):
		}
	}
}

func (p *Publisher) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-p.queue:
			p.logger.Info("booking event", "event_type", rec.EventType, "event_id", rec.EventID, "appointment_id", rec.AggregateID)
		}
	}
}
