package ports

import (
	"context"
	"time"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// CreateAppointmentInput carries all data needed to book a new appointment.
type CreateAppointmentInput struct {
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Reason      string
}

// ListAppointmentsResult is returned by ListAppointments.
type ListAppointmentsResult struct {
	Items      []*domain.Appointment
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AppointmentService defines use-case operations for appointments.
type AppointmentService interface {
	CreateAppointment(ctx context.Context, in CreateAppointmentInput) (*domain.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*domain.Appointment, error)
	ListAppointments(ctx context.Context, filter ListAppointmentsFilter) (*ListAppointmentsResult, error)
	// UpdateStatus validates the state machine transition before applying it.
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes string) (*domain.Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
	// AvailableSlots returns the free appointment start times for a doctor on
	// the given day.
	AvailableSlots(ctx context.Context, doctorID string, day time.Time) ([]time.Time, error)
}
