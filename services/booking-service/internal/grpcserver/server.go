// Package grpcserver exposes the booking ledger over gRPC.
package grpcserver

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/obelixq/obelixq/services/booking-service/internal/booking"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type Server struct {
	svc    *booking.Service
	logger *slog.Logger
}

func NewServer(svc *booking.Service, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

var _ BookingLedgerServer = (*Server)(nil)

func (s *Server) ReserveSlot(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var at time.Time
	if raw := str(in, "scheduled_at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "invalid scheduled_at")
		}
		at = t
	}
	appt, err := s.svc.Reserve(ctx, booking.ReserveInput{
		UserID:      str(in, "user_id"),
		BusinessID:  str(in, "business_id"),
		ServiceID:   str(in, "service_id"),
		ScheduledAt: at,
		Notes:       str(in, "notes"),
	})
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(appointmentFields(appt))
}

func (s *Server) ListAppointments(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	appts, err := s.svc.List(ctx, str(in, "user_id"), str(in, "status"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	items := make([]any, 0, len(appts))
	for _, a := range appts {
		items = append(items, appointmentFields(a))
	}
	return structpb.NewStruct(map[string]any{"appointments": items})
}

func (s *Server) GetAppointmentDetail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	d, err := s.svc.Detail(ctx, str(in, "appointment_id"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(map[string]any{
		"appointment": appointmentFields(d.Appointment),
		"business": map[string]any{
			"business_id":  d.Business.ID,
			"name":         d.Business.Name,
			"category":     d.Business.Category,
			"city":         d.Business.City,
			"phone":        d.Business.Phone,
			"email":        d.Business.Email,
			"opening_time": d.Business.OpeningTime,
			"closing_time": d.Business.ClosingTime,
		},
		"service": map[string]any{
			"service_id":       d.Service.ID,
			"name":             d.Service.Name,
			"price":            d.Service.Price.StringFixed(2),
			"duration_minutes": d.Service.DurationMinutes,
		},
		"user": map[string]any{
			"user_id":   d.User.ID,
			"full_name": d.User.FullName,
			"email":     d.User.Email,
			"phone":     d.User.Phone,
		},
	})
}

func (s *Server) TransitionStatus(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	appt, err := s.svc.Transition(ctx, str(in, "appointment_id"), str(in, "status"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(appointmentFields(appt))
}

func (s *Server) CancelAppointment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	appt, err := s.svc.Cancel(ctx, str(in, "appointment_id"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return structpb.NewStruct(appointmentFields(appt))
}

func (s *Server) ListAvailableSlots(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	slots, err := s.svc.Slots(ctx, str(in, "business_id"), str(in, "date"))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	out := make([]any, 0, len(slots))
	for _, t := range slots {
		out = append(out, t.Format(time.RFC3339))
	}
	return structpb.NewStruct(map[string]any{"slots": out})
}

// Code maps booking and ledger errors onto gRPC codes.
func Code(err error) codes.Code {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return codes.InvalidArgument
	case errors.Is(err, ledger.ErrNotFound):
		return codes.NotFound
	case errors.Is(err, ledger.ErrSlotUnavailable):
		return codes.AlreadyExists
	case errors.Is(err, ledger.ErrInvalidTransition):
		return codes.FailedPrecondition
	default:
		return codes.Internal
	}
}

func (s *Server) toStatus(ctx context.Context, err error) error {
	code := Code(err)
	if code == codes.Internal {
		s.logger.ErrorContext(ctx, "booking rpc failed", "err", err)
		return status.Error(code, "internal error")
	}
	return status.Error(code, err.Error())
}

func str(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func appointmentFields(a model.Appointment) map[string]any {
	return map[string]any{
		"appointment_id": a.ID,
		"user_id":        a.UserID,
		"business_id":    a.BusinessID,
		"service_id":     a.ServiceID,
		"scheduled_at":   a.ScheduledAt.UTC().Format(time.RFC3339Nano),
		"status":         string(a.Status),
		"notes":          a.Notes,
		"created_at":     a.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
