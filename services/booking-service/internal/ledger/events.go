package ledger

import (
	"context"
	"time"

	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

const EventReserved = "booking.appointment.reserved.v1"

// StatusEventType names the event emitted when an appointment enters status.
func StatusEventType(status model.Status) string {
	return "booking.appointment." + string(status) + ".v1"
}

type Event struct {
	Type        string
	Appointment model.Appointment
	// Previous is empty for reservations.
	Previous   model.Status
	OccurredAt time.Time
}

// EventSink receives events after the mutation that produced them is visible, one at a
// time and in the order the mutations were applied. Publish must not call back into
// the ledger.
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

type SinkFunc func(ctx context.Context, ev Event) error

func (f SinkFunc) Publish(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

type discardSink struct{}

func (discardSink) Publish(context.Context, Event) error { return nil }
