package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

const (
	patientsCollection = "patients"
	recordsCollection  = "medical_records"
)

type MongoPatientRepository struct {
	patients *mongo.Collection
	records  *mongo.Collection
}

func NewPatientRepository(db *mongo.Database) *MongoPatientRepository {
	return &MongoPatientRepository{
		patients: db.Collection(patientsCollection),
		records:  db.Collection(recordsCollection),
	}
}

type mongoPatient struct {
	ID          string `bson:"_id"`
	Name        string `bson:"name"`
	Email       string `bson:"email"`
	Phone       string `bson:"phone,omitempty"`
	DateOfBirth int64  `bson:"date_of_birth"`
	DoctorID    string `bson:"doctor_id,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

type mongoRecord struct {
	ID         string `bson:"_id"`
	PatientID  string `bson:"patient_id"`
	Diagnosis  string `bson:"diagnosis"`
	Treatment  string `bson:"treatment,omitempty"`
	Notes      string `bson:"notes,omitempty"`
	RecordedBy string `bson:"recorded_by"`
	RecordedAt int64  `bson:"recorded_at"`
}

func (r *MongoPatientRepository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	if _, err := r.patients.InsertOne(ctx, toMongoPatient(p)); err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return p, nil
}

func (r *MongoPatientRepository) FindByID(ctx context.Context, id string) (*domain.Patient, error) {
	var mp mongoPatient
	if err := r.patients.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPatientNotFound
		}
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return mp.toDomain(), nil
}

func (r *MongoPatientRepository) List(ctx context.Context, filter ports.ListPatientsFilter) ([]*domain.Patient, int64, error) {
	query := bson.M{}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}
	if filter.Search != "" {
		regex := bson.M{"$regex": filter.Search, "$options": "i"}
		query["$or"] = bson.A{bson.M{"name": regex}, bson.M{"email": regex}}
	}

	total, err := r.patients.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.patients.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer cur.Close(ctx)

	var result []*domain.Patient
	for cur.Next(ctx) {
		var mp mongoPatient
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode patient: %w", err)
		}
		result = append(result, mp.toDomain())
	}
	return result, total, cur.Err()
}

func (r *MongoPatientRepository) Update(ctx context.Context, p *domain.Patient) error {
	res, err := r.patients.ReplaceOne(ctx, bson.M{"_id": p.ID}, toMongoPatient(p))
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPatientNotFound
	}
	return nil
}

func (r *MongoPatientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.patients.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPatientNotFound
	}
	// Medical records are kept; they remain part of the clinical history even
	// after a patient record is removed.
	return nil
}

func (r *MongoPatientRepository) InsertRecord(ctx context.Context, rec *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	doc := mongoRecord{
		ID:         rec.ID,
		PatientID:  rec.PatientID,
		Diagnosis:  rec.Diagnosis,
		Treatment:  rec.Treatment,
		Notes:      rec.Notes,
		RecordedBy: rec.RecordedBy,
		RecordedAt: rec.RecordedAt.Unix(),
	}
	if _, err := r.records.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert medical record: %w", err)
	}
	return rec, nil
}

func (r *MongoPatientRepository) ListRecords(ctx context.Context, patientID string) ([]*domain.MedicalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cur, err := r.records.Find(ctx, bson.M{"patient_id": patientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list medical records: %w", err)
	}
	defer cur.Close(ctx)

	var result []*domain.MedicalRecord
	for cur.Next(ctx) {
		var mr mongoRecord
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode medical record: %w", err)
		}
		result = append(result, &domain.MedicalRecord{
			ID:         mr.ID,
			PatientID:  mr.PatientID,
			Diagnosis:  mr.Diagnosis,
			Treatment:  mr.Treatment,
			Notes:      mr.Notes,
			RecordedBy: mr.RecordedBy,
			RecordedAt: unixToTime(mr.RecordedAt),
		})
	}
	return result, cur.Err()
}

func toMongoPatient(p *domain.Patient) mongoPatient {
	return mongoPatient{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth.Unix(),
		DoctorID:    p.DoctorID,
		CreatedAt:   p.CreatedAt.Unix(),
		UpdatedAt:   p.UpdatedAt.Unix(),
	}
}

func (mp mongoPatient) toDomain() *domain.Patient {
	return &domain.Patient{
		ID:          mp.ID,
		Name:        mp.Name,
		Email:       mp.Email,
		Phone:       mp.Phone,
		DateOfBirth: unixToTime(mp.DateOfBirth),
		DoctorID:    mp.DoctorID,
		CreatedAt:   unixToTime(mp.CreatedAt),
		UpdatedAt:   unixToTime(mp.UpdatedAt),
	}
}
