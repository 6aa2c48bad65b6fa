package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// Clinic working hours for slot generation, UTC.
const (
	clinicOpenHour  = 9
	clinicCloseHour = 17
	slotMinutes     = 30
)

type appointmentService struct {
	repo ports.AppointmentRepository
	log  zerolog.Logger
}

// NewAppointmentService returns an AppointmentService implementation.
func NewAppointmentService(repo ports.AppointmentRepository, log zerolog.Logger) ports.AppointmentService {
	return &appointmentService{repo: repo, log: log}
}

func (s *appointmentService) CreateAppointment(ctx context.Context, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	scheduledAt := in.ScheduledAt.UTC().Truncate(time.Minute)

	// Reject double-booking: the requested start must still be free.
	booked, err := s.repo.FindByDoctorAndDay(ctx, in.DoctorID, scheduledAt)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	for _, a := range booked {
		if a.ScheduledAt.Equal(scheduledAt) {
			return nil, domain.ErrSlotUnavailable
		}
	}

	now := time.Now().UTC()
	appt := &domain.Appointment{
		ID:          uuid.NewString(),
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		ScheduledAt: scheduledAt,
		Reason:      in.Reason,
		Status:      domain.AppointmentScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create appointment")
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", created.ID).
		Str("doctor_id", created.DoctorID).
		Time("scheduled_at", created.ScheduledAt).
		Msg("appointment booked")
	return created, nil
}

func (s *appointmentService) GetAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *appointmentService) ListAppointments(ctx context.Context, filter ports.ListAppointmentsFilter) (*ports.ListAppointmentsResult, error) {
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

	return &ports.ListAppointmentsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus, notes string) (*domain.Appointment, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appt.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, appt.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status, notes); err != nil {
		return nil, err
	}

	appt.Status = status
	if notes != "" {
		appt.Notes = notes
	}
	appt.UpdatedAt = time.Now().UTC()

	s.log.Info().Str("appointment_id", id).Str("status", string(status)).Msg("appointment status updated")
	return appt, nil
}

func (s *appointmentService) DeleteAppointment(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AvailableSlots returns the free start times within working hours for the
// doctor on the given day. Booked, non-cancelled appointments occupy their
// slot.
func (s *appointmentService) AvailableSlots(ctx context.Context, doctorID string, day time.Time) ([]time.Time, error) {
	booked, err := s.repo.FindByDoctorAndDay(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	taken := make(map[time.Time]struct{}, len(booked))
	for _, a := range booked {
		if a.Status != domain.AppointmentCancelled {
			taken[a.ScheduledAt.UTC()] = struct{}{}
		}
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), clinicOpenHour, 0, 0, 0, time.UTC)
	dayEnd := time.Date(day.Year(), day.Month(), day.Day(), clinicCloseHour, 0, 0, 0, time.UTC)

	var slots []time.Time
	for t := dayStart; t.Before(dayEnd); t = t.Add(slotMinutes * time.Minute) {
		if _, ok := taken[t]; !ok {
			slots = append(slots, t)
		}
	}
	return slots, nil
}
