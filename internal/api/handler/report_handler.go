package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// ReportHandler handles reporting endpoints.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type patientSummaryResponse struct {
	Patient      *domain.Patient         `json:"patient"`
	Records      []*domain.MedicalRecord `json:"records"`
	Appointments []*domain.Appointment   `json:"appointments"`
	GeneratedAt  time.Time               `json:"generated_at"`
}

type analyticsResponse struct {
	TotalPatients        int64            `json:"total_patients"`
	AppointmentsByStatus map[string]int64 `json:"appointments_by_status"`
	GeneratedAt          time.Time        `json:"generated_at"`
}

// PatientSummary handles GET /v1/reports/patient-summary/:id.
//
// @Summary      Generate a patient summary report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  patientSummaryResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/reports/patient-summary/{id} [get]
func (h *ReportHandler) PatientSummary(c echo.Context) error {
	summary, err := h.service.PatientSummary(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	records := summary.Records
	if records == nil {
		records = []*domain.MedicalRecord{}
	}
	appts := summary.Appointments
	if appts == nil {
		appts = []*domain.Appointment{}
	}
	return c.JSON(http.StatusOK, patientSummaryResponse{
		Patient:      summary.Patient,
		Records:      records,
		Appointments: appts,
		GeneratedAt:  summary.GeneratedAt,
	})
}

// Analytics handles GET /v1/reports/analytics.
//
// @Summary      Clinic-wide analytics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analyticsResponse
// @Router       /v1/reports/analytics [get]
func (h *ReportHandler) Analytics(c echo.Context) error {
	report, err := h.service.Analytics(c.Request().Context())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64, len(report.AppointmentsByStatus))
	for status, count := range report.AppointmentsByStatus {
		byStatus[string(status)] = count
	}
	return c.JSON(http.StatusOK, analyticsResponse{
		TotalPatients:        report.TotalPatients,
		AppointmentsByStatus: byStatus,
		GeneratedAt:          report.GeneratedAt,
	})
}
