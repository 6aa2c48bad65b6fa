package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

const appointmentsCollection = "appointments"

type MongoAppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *MongoAppointmentRepository {
	return &MongoAppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type mongoAppointment struct {
	ID          string `bson:"_id"`
	PatientID   string `bson:"patient_id"`
	DoctorID    string `bson:"doctor_id"`
	ScheduledAt int64  `bson:"scheduled_at"`
	Reason      string `bson:"reason,omitempty"`
	Status      string `bson:"status"`
	Notes       string `bson:"notes,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
}

func (r *MongoAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc := mongoAppointment{
		ID:          a.ID,
		PatientID:   a.PatientID,
		DoctorID:    a.DoctorID,
		ScheduledAt: a.ScheduledAt.Unix(),
		Reason:      a.Reason,
		Status:      string(a.Status),
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt.Unix(),
		UpdatedAt:   a.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	return a, nil
}

func (r *MongoAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	var ma mongoAppointment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *MongoAppointmentRepository) List(ctx context.Context, filter ports.ListAppointmentsFilter) ([]*domain.Appointment, int64, error) {
	query := bson.M{}
	if filter.PatientID != "" {
		query["patient_id"] = filter.PatientID
	}
	if filter.DoctorID != "" {
		query["doctor_id"] = filter.DoctorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if !filter.DateFrom.IsZero() || !filter.DateTo.IsZero() {
		rangeQuery := bson.M{}
		if !filter.DateFrom.IsZero() {
			rangeQuery["$gte"] = filter.DateFrom.Unix()
		}
		if !filter.DateTo.IsZero() {
			rangeQuery["$lte"] = filter.DateTo.Unix()
		}
		query["scheduled_at"] = rangeQuery
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count appointments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduled_at", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	defer cur.Close(ctx)

	var result []*domain.Appointment
	for cur.Next(ctx) {
		var ma mongoAppointment
		if err := cur.Decode(&ma); err != nil {
			return nil, 0, fmt.Errorf("decode appointment: %w", err)
		}
		result = append(result, ma.toDomain())
	}
	return result, total, cur.Err()
}

func (r *MongoAppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes string) error {
	set := bson.M{
		"status":     string(status),
		"updated_at": time.Now().UTC().Unix(),
	}
	if notes != "" {
		set["notes"] = notes
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *MongoAppointmentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *MongoAppointmentRepository) FindByDoctorAndDay(ctx context.Context, doctorID string, day time.Time) ([]*domain.Appointment, error) {
	day = day.UTC()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := bson.M{
		"doctor_id":    doctorID,
		"status":       bson.M{"$ne": string(domain.AppointmentCancelled)},
		"scheduled_at": bson.M{"$gte": dayStart.Unix(), "$lt": dayEnd.Unix()},
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find appointments by day: %w", err)
	}
	defer cur.Close(ctx)

	var result []*domain.Appointment
	for cur.Next(ctx) {
		var ma mongoAppointment
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		result = append(result, ma.toDomain())
	}
	return result, cur.Err()
}

func (r *MongoAppointmentRepository) CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[domain.AppointmentStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode count: %w", err)
		}
		counts[domain.AppointmentStatus(row.ID)] = row.Count
	}
	return counts, cur.Err()
}

func (ma mongoAppointment) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:          ma.ID,
		PatientID:   ma.PatientID,
		DoctorID:    ma.DoctorID,
		ScheduledAt: unixToTime(ma.ScheduledAt),
		Reason:      ma.Reason,
		Status:      domain.AppointmentStatus(ma.Status),
		Notes:       ma.Notes,
		CreatedAt:   unixToTime(ma.CreatedAt),
		UpdatedAt:   unixToTime(ma.UpdatedAt),
	}
}
