// Package booking validates transport input and drives the ledger.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/obelixq/obelixq/services/booking-service/internal/availability"
	"github.com/obelixq/obelixq/services/booking-service/internal/catalog"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

var ErrValidation = errors.New("validation failed")

type ReserveInput struct {
	UserID      string    `validate:"required,max=128"`
	BusinessID  string    `validate:"required,max=128"`
	ServiceID   string    `validate:"required,max=128"`
	ScheduledAt time.Time `validate:"required"`
	Notes       string    `validate:"max=1000"`
}

type Service struct {
	ledger   *ledger.Ledger
	catalog  catalog.Lookups
	validate *validator.Validate
}

func NewService(l *ledger.Ledger, lookups catalog.Lookups) *Service {
	return &Service{ledger: l, catalog: lookups, validate: validator.New()}
}

func (s *Service) Reserve(ctx context.Context, in ReserveInput) (model.Appointment, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.BusinessID = strings.TrimSpace(in.BusinessID)
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	if err := s.check(in); err != nil {
		return model.Appointment{}, err
	}

	business, ok, err := s.catalog.FindBusiness(ctx, in.BusinessID)
	if err != nil {
		return model.Appointment{}, err
	}
	if !ok {
		return model.Appointment{}, fmt.Errorf("%w: business %s", ledger.ErrNotFound, in.BusinessID)
	}
	if !business.Active {
		return model.Appointment{}, fmt.Errorf("%w: business %s is not accepting bookings", ErrValidation, in.BusinessID)
	}
	svc, ok, err := s.catalog.FindService(ctx, in.ServiceID)
	if err != nil {
		return model.Appointment{}, err
	}
	if !ok {
		return model.Appointment{}, fmt.Errorf("%w: service %s", ledger.ErrNotFound, in.ServiceID)
	}
	if svc.BusinessID != business.ID {
		return model.Appointment{}, fmt.Errorf("%w: service %s is not offered by business %s", ErrValidation, svc.ID, business.ID)
	}
	if !svc.Active {
		return model.Appointment{}, fmt.Errorf("%w: service %s is not available", ErrValidation, svc.ID)
	}

	return s.ledger.ReserveSlot(ctx, ledger.ReserveRequest{
		UserID:      in.UserID,
		BusinessID:  in.BusinessID,
		ServiceID:   in.ServiceID,
		ScheduledAt: in.ScheduledAt,
		Notes:       strings.TrimSpace(in.Notes),
	})
}

// List returns the user's appointments, restricted to status when it is not empty.
func (s *Service) List(ctx context.Context, userID, status string) ([]model.Appointment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if strings.TrimSpace(status) == "" {
		return s.ledger.ListByUser(ctx, userID), nil
	}
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.ledger.ListByUserAndStatus(ctx, userID, st), nil
}

func (s *Service) Detail(ctx context.Context, appointmentID string) (model.AppointmentDetail, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return model.AppointmentDetail{}, fmt.Errorf("%w: appointment_id is required", ErrValidation)
	}
	return s.ledger.GetDetail(ctx, appointmentID)
}

func (s *Service) Transition(ctx context.Context, appointmentID, status string) (model.Appointment, error) {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return model.Appointment{}, fmt.Errorf("%w: appointment_id is required", ErrValidation)
	}
	st, err := parseStatus(status)
	if err != nil {
		return model.Appointment{}, err
	}
	return s.ledger.TransitionStatus(ctx, appointmentID, st)
}

func (s *Service) Cancel(ctx context.Context, appointmentID string) (model.Appointment, error) {
	return s.Transition(ctx, appointmentID, string(model.StatusCancelled))
}

// Slots lists free slot starts for a business on date (YYYY-MM-DD).
func (s *Service) Slots(ctx context.Context, businessID, date string) ([]time.Time, error) {
	businessID = strings.TrimSpace(businessID)
	if businessID == "" {
		return nil, fmt.Errorf("%w: business_id is required", ErrValidation)
	}
	day, err := availability.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return s.ledger.ListAvailableSlots(ctx, businessID, day)
}

func (s *Service) check(in ReserveInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fieldName(f.Field()), f.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, ", "))
}

func parseStatus(raw string) (model.Status, error) {
	st, err := model.ParseStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return st, nil
}

var wireNames = map[string]string{
	"UserID":      "user_id",
	"BusinessID":  "business_id",
	"ServiceID":   "service_id",
	"ScheduledAt": "scheduled_at",
	"Notes":       "notes",
}

func fieldName(f string) string {
	if n, ok := wireNames[f]; ok {
		return n
	}
	return f
}
