package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/api/metrics"
	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	PatientID   string    `json:"patient_id" validate:"required"`
	DoctorID    string    `json:"doctor_id" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Reason      string    `json:"reason"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	Notes  string `json:"notes"`
}

type listAppointmentsResponse struct {
	Items      []*domain.Appointment `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"total_pages"`
}

type availableSlotsResponse struct {
	DoctorID string   `json:"doctor_id"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}

// Create handles POST /v1/appointments.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.service.CreateAppointment(c.Request().Context(), ports.CreateAppointmentInput{
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.AppointmentsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, appt)
}

// Get handles GET /v1/appointments/:id.
//
// @Summary      Get an appointment by id
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Appointment id"
// @Success      200  {object}  domain.Appointment
// @Failure      404  {object}  map[string]string
// @Router       /v1/appointments/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	appt, err := h.service.GetAppointment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// List handles GET /v1/appointments.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        patient_id  query     string  false  "Filter by patient"
// @Param        doctor_id   query     string  false  "Filter by doctor"
// @Param        status      query     string  false  "Filter by status"
// @Param        page        query     int     false  "1-based page number"
// @Param        limit       query     int     false  "Page size"
// @Success      200         {object}  listAppointmentsResponse
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListAppointments(c.Request().Context(), ports.ListAppointmentsFilter{
		PatientID: c.QueryParam("patient_id"),
		DoctorID:  c.QueryParam("doctor_id"),
		Status:    c.QueryParam("status"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.Appointment{}
	}
	return c.JSON(http.StatusOK, listAppointmentsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// UpdateStatus handles PATCH /v1/appointments/:id/status.
//
// @Summary      Update appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Appointment id"
// @Param        body  body      updateAppointmentStatusRequest  true  "New status"
// @Success      200   {object}  domain.Appointment
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	var req updateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.AppointmentStatus(req.Status), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// Delete handles DELETE /v1/appointments/:id.
//
// @Summary      Delete an appointment
// @Tags         appointments
// @Security     BearerAuth
// @Param        id  path  string  true  "Appointment id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAppointment(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AvailableSlots handles GET /v1/appointments/available-slots.
//
// @Summary      List free appointment slots for a doctor
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Param        doctor_id  query     string  true  "Doctor id"
// @Param        date       query     string  true  "Day (YYYY-MM-DD)"
// @Success      200        {object}  availableSlotsResponse
// @Failure      400        {object}  map[string]string
// @Router       /v1/appointments/available-slots [get]
func (h *AppointmentHandler) AvailableSlots(c echo.Context) error {
	doctorID := c.QueryParam("doctor_id")
	if doctorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id is required")
	}

	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	slots, err := h.service.AvailableSlots(c.Request().Context(), doctorID, day)
	if err != nil {
		return err
	}

	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, availableSlotsResponse{
		DoctorID: doctorID,
		Date:     day.Format("2006-01-02"),
		Slots:    formatted,
	})
}
