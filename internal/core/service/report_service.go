package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/meditrack/clinic-system/internal/core/ports"
)

type reportService struct {
	patients     ports.PatientRepository
	appointments ports.AppointmentRepository
	log          zerolog.Logger
}

// NewReportService returns a ReportService implementation.
func NewReportService(patients ports.PatientRepository, appointments ports.AppointmentRepository, log zerolog.Logger) ports.ReportService {
	return &reportService{patients: patients, appointments: appointments, log: log}
}

// PatientSummary assembles the patient's record, medical history, and
// appointments into a single report.
func (s *reportService) PatientSummary(ctx context.Context, patientID string) (*ports.PatientSummary, error) {
	patient, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	records, err := s.patients.ListRecords(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient summary: records: %w", err)
	}

	appts, _, err := s.appointments.List(ctx, ports.ListAppointmentsFilter{
		PatientID: patientID,
		Page:      1,
		Limit:     maxPageLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("patient summary: appointments: %w", err)
	}

	return &ports.PatientSummary{
		Patient:      patient,
		Records:      records,
		Appointments: appts,
		GeneratedAt:  time.Now().UTC(),
	}, nil
}

// Analytics computes the clinic-wide aggregates.
func (s *reportService) Analytics(ctx context.Context) (*ports.AnalyticsReport, error) {
	_, totalPatients, err := s.patients.List(ctx, ports.ListPatientsFilter{Page: 1, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("analytics: patients: %w", err)
	}

	byStatus, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: appointments: %w", err)
	}

	return &ports.AnalyticsReport{
		TotalPatients:        totalPatients,
		AppointmentsByStatus: byStatus,
		GeneratedAt:          time.Now().UTC(),
	}, nil
}
