package domain

import (
	"errors"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")

// Patient is a clinic patient record.
type Patient struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	DateOfBirth time.Time `json:"date_of_birth"`
	DoctorID    string    `json:"doctor_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MedicalRecord is a single entry in a patient's medical history.
type MedicalRecord struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patient_id"`
	Diagnosis  string    `json:"diagnosis"`
	Treatment  string    `json:"treatment,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	RecordedAt time.Time `json:"recorded_at"`
}
