package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

const maxPageLimit = 100

type patientService struct {
	repo ports.PatientRepository
	log  zerolog.Logger
}

// NewPatientService returns a PatientService implementation.
func NewPatientService(repo ports.PatientRepository, log zerolog.Logger) ports.PatientService {
	return &patientService{repo: repo, log: log}
}

func (s *patientService) CreatePatient(ctx context.Context, in ports.CreatePatientInput) (*domain.Patient, error) {
	now := time.Now().UTC()
	patient := &domain.Patient{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		DoctorID:    in.DoctorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, patient)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create patient")
		return nil, err
	}

	s.log.Info().Str("patient_id", created.ID).Msg("patient created")
	return created, nil
}

func (s *patientService) GetPatient(ctx context.Context, id string) (*domain.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *patientService) ListPatients(ctx context.Context, filter ports.ListPatientsFilter) (*ports.ListPatientsResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.ListPatientsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *patientService) UpdatePatient(ctx context.Context, id string, in ports.UpdatePatientInput) (*domain.Patient, error) {
	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		patient.Name = in.Name
	}
	if in.Email != "" {
		patient.Email = in.Email
	}
	if in.Phone != "" {
		patient.Phone = in.Phone
	}
	if in.DoctorID != "" {
		patient.DoctorID = in.DoctorID
	}
	patient.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *patientService) DeletePatient(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("patient_id", id).Msg("patient deleted")
	return nil
}

func (s *patientService) AddMedicalRecord(ctx context.Context, in ports.AddMedicalRecordInput) (*domain.MedicalRecord, error) {
	// The patient must exist; a record without a patient is meaningless.
	if _, err := s.repo.FindByID(ctx, in.PatientID); err != nil {
		return nil, err
	}

	rec := &domain.MedicalRecord{
		ID:         uuid.NewString(),
		PatientID:  in.PatientID,
		Diagnosis:  in.Diagnosis,
		Treatment:  in.Treatment,
		Notes:      in.Notes,
		RecordedBy: in.RecordedBy,
		RecordedAt: time.Now().UTC(),
	}
	return s.repo.InsertRecord(ctx, rec)
}

func (s *patientService) ListMedicalRecords(ctx context.Context, patientID string) ([]*domain.MedicalRecord, error) {
	if _, err := s.repo.FindByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListRecords(ctx, patientID)
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}
	return pages
}
