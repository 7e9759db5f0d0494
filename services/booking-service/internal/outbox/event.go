package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	otelx "github.com/obelixq/obelixq/libs/otel"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
)

// Record is a queued event. The Kafka topic name equals EventType.
type Record struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     []byte
	Trace       otelx.TraceContext
}

type payload struct {
	EventID        string `json:"event_id"`
	AppointmentID  string `json:"appointment_id"`
	UserID         string `json:"user_id"`
	BusinessID     string `json:"business_id"`
	ServiceID      string `json:"service_id"`
	ScheduledAt    string `json:"scheduled_at"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	OccurredAt     string `json:"occurred_at"`
}

func newRecord(ev ledger.Event, tc otelx.TraceContext) (Record, error) {
	id := uuid.NewString()
	a := ev.Appointment
	body, err := json.Marshal(payload{
		EventID:        id,
		AppointmentID:  a.ID,
		UserID:         a.UserID,
		BusinessID:     a.BusinessID,
		ServiceID:      a.ServiceID,
		ScheduledAt:    a.ScheduledAt.UTC().Format(time.RFC3339Nano),
		Status:         string(a.Status),
		PreviousStatus: string(ev.Previous),
		OccurredAt:     ev.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return Record{}, err
	}
	return Record{EventID: id, EventType: ev.Type, AggregateID: a.ID, Payload: body, Trace: tc}, nil
}
