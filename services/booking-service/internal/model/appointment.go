package model

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus accepts the lowercase wire names, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", raw)
}

// Active reports whether an appointment in this status holds its slot.
func (s Status) Active() bool {
	return s != StatusCancelled
}

type Appointment struct {
	ID          string
	UserID      string
	BusinessID  string
	ServiceID   string
	ScheduledAt time.Time
	Status      Status
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AppointmentDetail is an appointment joined with its catalog entities at read time.
type AppointmentDetail struct {
	Appointment Appointment
	Business    Business
	Service     Service
	User        User
}
