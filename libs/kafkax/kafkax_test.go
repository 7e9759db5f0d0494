package kafkax

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka-1:9092, ,kafka-2:9092 ")
	if len(got) != 2 || got[0] != "kafka-1:9092" || got[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers %v", got)
	}
	if ReadyCheck("") != nil {
		t.Fatal("expected nil ready check without brokers")
	}
}

func TestExtractEventMetaFallback(t *testing.T) {
	meta := ExtractEventMeta(kafka.Message{Topic: "booking.appointment.reserved.v1", Key: []byte("appt-1")})
	if meta.EventID != "appt-1" || meta.EventType != "booking.appointment.reserved.v1" {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestHeadersCarryTraceContext(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	headers := EventMeta{EventID: "evt-1", EventType: "booking.appointment.reserved.v1"}.Headers(ctx)
	if HeaderValue(headers, "event_id") != "evt-1" {
		t.Fatal("missing event_id header")
	}
	if HeaderValue(headers, "traceparent") == "" {
		t.Fatal("missing traceparent header")
	}

	extracted := ExtractTraceContext(context.Background(), kafka.Message{Headers: headers})
	if got := trace.SpanContextFromContext(extracted).TraceID(); got != traceID {
		t.Fatalf("trace id not round-tripped: %s", got)
	}
}
