// Package ledger owns every appointment, enforces slot exclusivity per business
// and executes status transitions.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/obelixq/obelixq/services/booking-service/internal/availability"
	"github.com/obelixq/obelixq/services/booking-service/internal/catalog"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

// SlotStep is the fixed availability granularity.
const SlotStep = 30 * time.Minute

type Config struct {
	Sink     EventSink
	Clock    func() time.Time
	Location *time.Location
	Logger   *slog.Logger
	NewID    func() string
}

type ReserveRequest struct {
	UserID      string
	BusinessID  string
	ServiceID   string
	ScheduledAt time.Time
	Notes       string
}

type slotKey struct {
	businessID string
	at         int64 // unix millis
}

type Ledger struct {
	catalog catalog.Lookups
	sink    EventSink
	now     func() time.Time
	loc     *time.Location
	logger  *slog.Logger
	newID   func() string

	mu     sync.RWMutex
	byID   map[string]*model.Appointment
	bySlot map[slotKey]string
	byUser map[string][]string

	// emitMu is taken before mu is released so events reach the sink in commit order.
	emitMu sync.Mutex
}

func New(lookups catalog.Lookups, cfg Config) *Ledger {
	l := &Ledger{
		catalog: lookups,
		sink:    cfg.Sink,
		now:     cfg.Clock,
		loc:     cfg.Location,
		logger:  cfg.Logger,
		newID:   cfg.NewID,
		byID:    map[string]*model.Appointment{},
		bySlot:  map[slotKey]string{},
		byUser:  map[string][]string{},
	}
	if l.sink == nil {
		l.sink = discardSink{}
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.loc == nil {
		l.loc = time.Local
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.newID == nil {
		l.newID = uuid.NewString
	}
	return l
}

// ReserveSlot creates a pending appointment unless the business already holds an
// active appointment at the same instant.
func (l *Ledger) ReserveSlot(ctx context.Context, req ReserveRequest) (model.Appointment, error) {
	at := req.ScheduledAt.Truncate(time.Millisecond)
	key := slotKey{businessID: req.BusinessID, at: at.UnixMilli()}

	l.mu.Lock()
	if _, taken := l.bySlot[key]; taken {
		l.mu.Unlock()
		return model.Appointment{}, fmt.Errorf("%w: business %s is already booked at %s",
			ErrSlotUnavailable, req.BusinessID, at.In(l.loc).Format("2006-01-02 15:04"))
	}
	now := l.now()
	appt := &model.Appointment{
		ID:          l.newID(),
		UserID:      req.UserID,
		BusinessID:  req.BusinessID,
		ServiceID:   req.ServiceID,
		ScheduledAt: at,
		Status:      model.StatusPending,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	l.byID[appt.ID] = appt
	l.bySlot[key] = appt.ID
	l.byUser[appt.UserID] = append(l.byUser[appt.UserID], appt.ID)
	out := *appt
	l.emitMu.Lock()
	l.mu.Unlock()

	l.emit(ctx, Event{Type: EventReserved, Appointment: out, OccurredAt: now})
	l.emitMu.Unlock()
	return out, nil
}

// ListByUser returns the user's appointments, latest ScheduledAt first.
func (l *Ledger) ListByUser(_ context.Context, userID string) []model.Appointment {
	return l.listUser(userID, func(model.Appointment) bool { return true })
}

func (l *Ledger) ListByUserAndStatus(_ context.Context, userID string, status model.Status) []model.Appointment {
	return l.listUser(userID, func(a model.Appointment) bool { return a.Status == status })
}

func (l *Ledger) listUser(userID string, keep func(model.Appointment) bool) []model.Appointment {
	l.mu.RLock()
	ids := l.byUser[userID]
	out := make([]model.Appointment, 0, len(ids))
	for _, id := range ids {
		if a := *l.byID[id]; keep(a) {
			out = append(out, a)
		}
	}
	l.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.ScheduledAt.Equal(b.ScheduledAt) {
			return a.ScheduledAt.After(b.ScheduledAt)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out
}

// Get returns a snapshot of one appointment.
func (l *Ledger) Get(_ context.Context, appointmentID string) (model.Appointment, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.byID[appointmentID]
	if !ok {
		return model.Appointment{}, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	return *a, nil
}

// GetDetail joins the appointment with its business, service and user. Any missing
// piece is ErrNotFound; catalog faults are returned unchanged.
func (l *Ledger) GetDetail(ctx context.Context, appointmentID string) (model.AppointmentDetail, error) {
	appt, err := l.Get(ctx, appointmentID)
	if err != nil {
		return model.AppointmentDetail{}, err
	}

	business, ok, err := l.catalog.FindBusiness(ctx, appt.BusinessID)
	if err != nil {
		return model.AppointmentDetail{}, err
	}
	if !ok {
		return model.AppointmentDetail{}, fmt.Errorf("%w: business %s", ErrNotFound, appt.BusinessID)
	}
	service, ok, err := l.catalog.FindService(ctx, appt.ServiceID)
	if err != nil {
		return model.AppointmentDetail{}, err
	}
	if !ok {
		return model.AppointmentDetail{}, fmt.Errorf("%w: service %s", ErrNotFound, appt.ServiceID)
	}
	user, ok, err := l.catalog.FindUser(ctx, appt.UserID)
	if err != nil {
		return model.AppointmentDetail{}, err
	}
	if !ok {
		return model.AppointmentDetail{}, fmt.Errorf("%w: user %s", ErrNotFound, appt.UserID)
	}

	return model.AppointmentDetail{Appointment: appt, Business: business, Service: service, User: user}, nil
}

var transitions = map[model.Status][]model.Status{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
}

func allowed(from, to model.Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// TransitionStatus moves an appointment to status. Moving to the current status
// is a no-op that emits nothing.
func (l *Ledger) TransitionStatus(ctx context.Context, appointmentID string, status model.Status) (model.Appointment, error) {
	l.mu.Lock()
	appt, ok := l.byID[appointmentID]
	if !ok {
		l.mu.Unlock()
		return model.Appointment{}, fmt.Errorf("%w: appointment %s", ErrNotFound, appointmentID)
	}
	prev := appt.Status
	if prev == status {
		out := *appt
		l.mu.Unlock()
		return out, nil
	}
	if !allowed(prev, status) {
		l.mu.Unlock()
		return model.Appointment{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, prev, status)
	}

	now := l.now()
	appt.Status = status
	appt.UpdatedAt = now
	if !status.Active() {
		key := slotKey{businessID: appt.BusinessID, at: appt.ScheduledAt.UnixMilli()}
		if l.bySlot[key] == appt.ID {
			delete(l.bySlot, key)
		}
	}
	out := *appt
	l.emitMu.Lock()
	l.mu.Unlock()

	l.emit(ctx, Event{Type: StatusEventType(status), Appointment: out, Previous: prev, OccurredAt: now})
	l.emitMu.Unlock()
	return out, nil
}

func (l *Ledger) Cancel(ctx context.Context, appointmentID string) (model.Appointment, error) {
	return l.TransitionStatus(ctx, appointmentID, model.StatusCancelled)
}

// ListAvailableSlots returns the free half-hour starts of a business on day, ascending.
func (l *Ledger) ListAvailableSlots(ctx context.Context, businessID string, day availability.Date) ([]time.Time, error) {
	business, ok, err := l.catalog.FindBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: business %s", ErrNotFound, businessID)
	}
	open, err := availability.ParseClock(business.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("business %s opening time: %v", businessID, err)
	}
	closing, err := availability.ParseClock(business.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("business %s closing time: %v", businessID, err)
	}

	candidates := availability.Candidates(day, l.loc, open.Hour, closing.Hour, SlotStep)

	l.mu.RLock()
	defer l.mu.RUnlock()
	return availability.Filter(candidates, func(t time.Time) bool {
		_, taken := l.bySlot[slotKey{businessID: businessID, at: t.UnixMilli()}]
		return taken
	}), nil
}

// Stats counts appointments per status.
func (l *Ledger) Stats() map[model.Status]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := map[model.Status]int{
		model.StatusPending:   0,
		model.StatusConfirmed: 0,
		model.StatusCompleted: 0,
		model.StatusCancelled: 0,
	}
	for _, a := range l.byID {
		out[a.Status]++
	}
	return out
}

func (l *Ledger) emit(ctx context.Context, ev Event) {
	if err := l.sink.Publish(ctx, ev); err != nil {
		l.logger.Error("event publish failed", "err", err, "event_type", ev.Type, "appointment_id", ev.Appointment.ID)
	}
}
