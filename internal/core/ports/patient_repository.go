package ports

import (
	"context"

	"github.com/meditrack/clinic-system/internal/core/domain"
)

// ListPatientsFilter carries the query parameters for listing patients.
type ListPatientsFilter struct {
	DoctorID string // empty = no filter
	Search   string // optional: partial match on name or email
	Page     int    // 1-based
	Limit    int    // capped by the service
}

// PatientRepository defines persistence operations for patients and their
// medical records.
type PatientRepository interface {
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	FindByID(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context, filter ListPatientsFilter) ([]*domain.Patient, int64, error)
	Update(ctx context.Context, p *domain.Patient) error
	Delete(ctx context.Context, id string) error

	InsertRecord(ctx context.Context, rec *domain.MedicalRecord) (*domain.MedicalRecord, error)
	ListRecords(ctx context.Context, patientID string) ([]*domain.MedicalRecord, error)
}
