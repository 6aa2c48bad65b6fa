package ports

import (
	"context"
	"time"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// PatientSummary aggregates a patient's record for reporting.
type PatientSummary struct {
	Patient      *domain.Patient
	Records      []*domain.MedicalRecord
	Appointments []*domain.Appointment
	GeneratedAt  time.Time
}

// AnalyticsReport is the clinic-wide aggregate view.
type AnalyticsReport struct {
	TotalPatients        int64
	AppointmentsByStatus map[domain.AppointmentStatus]int64
	GeneratedAt          time.Time
}

// ReportService defines reporting operations.
type ReportService interface {
	PatientSummary(ctx context.Context, patientID string) (*PatientSummary, error)
	Analytics(ctx context.Context) (*AnalyticsReport, error)
}
