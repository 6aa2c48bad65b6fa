package ports

import (
	"context"
	"time"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// ListAppointmentsFilter carries the query parameters for listing appointments.
type ListAppointmentsFilter struct {
	PatientID string // empty = no filter
	DoctorID  string // empty = no filter
	Status    string // optional: filter by appointment status
	DateFrom  time.Time
	DateTo    time.Time
	Page      int // 1-based
	Limit     int
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	List(ctx context.Context, filter ListAppointmentsFilter) ([]*domain.Appointment, int64, error)
	// UpdateStatus atomically applies a status change together with optional notes.
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes string) error
	Delete(ctx context.Context, id string) error
	// FindByDoctorAndDay returns all non-cancelled appointments for a doctor on
	// the day containing date, in UTC.
	FindByDoctorAndDay(ctx context.Context, doctorID string, day time.Time) ([]*domain.Appointment, error)
	// CountByStatus returns the number of appointments per status.
	CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error)
}
