package ports

import (
	"context"
	"time"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// CreatePatientInput carries all data needed to register a new patient.
type CreatePatientInput struct {
	Name        string
	Email       string
	Phone       string
	DateOfBirth time.Time
	DoctorID    string
}

// UpdatePatientInput carries the mutable patient fields.
type UpdatePatientInput struct {
	Name     string
	Email    string
	Phone    string
	DoctorID string
}

// AddMedicalRecordInput carries a new medical history entry.
type AddMedicalRecordInput struct {
	PatientID  string
	Diagnosis  string
	Treatment  string
	Notes      string
	RecordedBy string // user id of the clinician writing the entry
}

// ListPatientsResult is returned by ListPatients.
type ListPatientsResult struct {
	Items      []*domain.Patient
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// PatientService defines use-case operations for patients.
type PatientService interface {
	CreatePatient(ctx context.Context, in CreatePatientInput) (*domain.Patient, error)
	GetPatient(ctx context.Context, id string) (*domain.Patient, error)
	ListPatients(ctx context.Context, filter ListPatientsFilter) (*ListPatientsResult, error)
	UpdatePatient(ctx context.Context, id string, in UpdatePatientInput) (*domain.Patient, error)
	DeletePatient(ctx context.Context, id string) error

	AddMedicalRecord(ctx context.Context, in AddMedicalRecordInput) (*domain.MedicalRecord, error)
	ListMedicalRecords(ctx context.Context, patientID string) ([]*domain.MedicalRecord, error)
}
