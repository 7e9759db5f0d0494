package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/obelixq/obelixq/libs/httpx"
	"github.com/obelixq/obelixq/services/booking-service/internal/booking"
	"github.com/obelixq/obelixq/services/booking-service/internal/ledger"
	"github.com/obelixq/obelixq/services/booking-service/internal/model"
)

type BookingHandler struct {
	svc    *booking.Service
	logger *slog.Logger
}

func NewBookingHandler(svc *booking.Service, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

// Register mounts every booking route on mux.
func (h *BookingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/v1/appointments", h.Appointments)
	mux.HandleFunc("/api/v1/appointments/detail", h.Detail)
	mux.HandleFunc("/api/v1/appointments/status", h.Status)
	mux.HandleFunc("/api/v1/appointments/cancel", h.Cancel)
	mux.HandleFunc("/api/v1/public/slots", h.Slots)
}

type createBookingRequest struct {
	UserID      string `json:"user_id"`
	BusinessID  string `json:"business_id"`
	ServiceID   string `json:"service_id"`
	ScheduledAt string `json:"scheduled_at"`
	Notes       string `json:"notes"`
}

type statusRequest struct {
	AppointmentID string `json:"appointment_id"`
	Status        string `json:"status"`
}

type appointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	UserID        string `json:"user_id"`
	BusinessID    string `json:"business_id"`
	ServiceID     string `json:"service_id"`
	ScheduledAt   string `json:"scheduled_at"`
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type detailResponse struct {
	Appointment appointmentItem `json:"appointment"`
	Business    businessItem    `json:"business"`
	Service     serviceItem     `json:"service"`
	User        userItem        `json:"user"`
}

type businessItem struct {
	BusinessID  string `json:"business_id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type serviceItem struct {
	ServiceID       string `json:"service_id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
}

type userItem struct {
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type slotItem struct {
	StartTime string `json:"start_time"`
}

// Appointments serves POST (reserve) and GET (list) on the collection.
func (h *BookingHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.Create(w, r)
	case http.MethodGet:
		h.List(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	var scheduledAt time.Time
	if raw := strings.TrimSpace(req.ScheduledAt); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid scheduled_at")
			return
		}
		scheduledAt = t
	}

	appt, err := h.svc.Reserve(r.Context(), booking.ReserveInput{
		UserID:      req.UserID,
		BusinessID:  req.BusinessID,
		ServiceID:   req.ServiceID,
		ScheduledAt: scheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toAppointmentItem(appt))
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	appts, err := h.svc.List(r.Context(), q.Get("user_id"), q.Get("status"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	items := make([]appointmentItem, 0, len(appts))
	for _, a := range appts {
		items = append(items, toAppointmentItem(a))
	}
	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *BookingHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	d, err := h.svc.Detail(r.Context(), r.URL.Query().Get("appointment_id"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, detailResponse{
		Appointment: toAppointmentItem(d.Appointment),
		Business: businessItem{
			BusinessID:  d.Business.ID,
			Name:        d.Business.Name,
			Category:    d.Business.Category,
			Address:     d.Business.Address,
			City:        d.Business.City,
			Phone:       d.Business.Phone,
			Email:       d.Business.Email,
			OpeningTime: d.Business.OpeningTime,
			ClosingTime: d.Business.ClosingTime,
		},
		Service: serviceItem{
			ServiceID:       d.Service.ID,
			Name:            d.Service.Name,
			Price:           d.Service.Price.StringFixed(2),
			DurationMinutes: d.Service.DurationMinutes,
		},
		User: userItem{
			UserID:   d.User.ID,
			FullName: d.User.FullName,
			Email:    d.User.Email,
			Phone:    d.User.Phone,
		},
	})
}

func (h *BookingHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	appt, err := h.svc.Transition(r.Context(), req.AppointmentID, req.Status)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointmentItem(appt))
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	appt, err := h.svc.Cancel(r.Context(), req.AppointmentID)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toAppointmentItem(appt))
}

func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	slots, err := h.svc.Slots(r.Context(), q.Get("business_id"), q.Get("date"))
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	resp := make([]slotItem, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, slotItem{StartTime: s.Format(time.RFC3339)})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// StatusCode maps booking and ledger errors onto HTTP statuses.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrSlotUnavailable), errors.Is(err, ledger.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *BookingHandler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	code := StatusCode(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("booking request failed", "err", err, "path", r.URL.Path)
		httpx.WriteError(w, code, "internal error")
		return
	}
	httpx.WriteError(w, code, err.Error())
}

func toAppointmentItem(a model.Appointment) appointmentItem {
	return appointmentItem{
		AppointmentID: a.ID,
		UserID:        a.UserID,
		BusinessID:    a.BusinessID,
		ServiceID:     a.ServiceID,
		ScheduledAt:   a.ScheduledAt.UTC().Format(time.RFC3339Nano),
		Status:        string(a.Status),
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
