package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meditrack/clinic-system/internal/core/domain"
	"github.com/meditrack/clinic-system/internal/core/ports"
)

// PatientHandler handles HTTP requests for patient operations.
type PatientHandler struct {
	service ports.PatientService
}

func NewPatientHandler(service ports.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

type createPatientRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	DoctorID    string `json:"doctor_id"`
}

type updatePatientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	DoctorID string `json:"doctor_id"`
}

type addMedicalRecordRequest struct {
	Diagnosis string `json:"diagnosis" validate:"required"`
	Treatment string `json:"treatment"`
	Notes     string `json:"notes"`
}

type listPatientsResponse struct {
	Items      []*domain.Patient `json:"items"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// Create handles POST /v1/patients.
//
// @Summary      Register a new patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPatientRequest  true  "Patient details"
// @Success      201   {object}  domain.Patient
// @Failure      400   {object}  map[string]string
// @Router       /v1/patients [post]
func (h *PatientHandler) Create(c echo.Context) error {
	var req createPatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
	}

	patient, err := h.service.CreatePatient(c.Request().Context(), ports.CreatePatientInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dob,
		DoctorID:    req.DoctorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patient)
}

// Get handles GET /v1/patients/:id.
//
// @Summary      Get a patient by id
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  domain.Patient
// @Failure      404  {object}  map[string]string
// @Router       /v1/patients/{id} [get]
func (h *PatientHandler) Get(c echo.Context) error {
	patient, err := h.service.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// List handles GET /v1/patients.
//
// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        doctor_id  query     string  false  "Filter by assigned doctor"
// @Param        search     query     string  false  "Partial match on name or email"
// @Param        page       query     int     false  "1-based page number"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listPatientsResponse
// @Router       /v1/patients [get]
func (h *PatientHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListPatients(c.Request().Context(), ports.ListPatientsFilter{
		DoctorID: c.QueryParam("doctor_id"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := result.Items
	if items == nil {
		items = []*domain.Patient{}
	}
	return c.JSON(http.StatusOK, listPatientsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Update handles PUT /v1/patients/:id.
//
// @Summary      Update a patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Patient id"
// @Param        body  body      updatePatientRequest  true  "Fields to update"
// @Success      200   {object}  domain.Patient
// @Failure      404   {object}  map[string]string
// @Router       /v1/patients/{id} [put]
func (h *PatientHandler) Update(c echo.Context) error {
	var req updatePatientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patient, err := h.service.UpdatePatient(c.Request().Context(), c.Param("id"), ports.UpdatePatientInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		DoctorID: req.DoctorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// Delete handles DELETE /v1/patients/:id.
//
// @Summary      Delete a patient
// @Tags         patients
// @Security     BearerAuth
// @Param        id  path  string  true  "Patient id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/patients/{id} [delete]
func (h *PatientHandler) Delete(c echo.Context) error {
	if err := h.service.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddMedicalRecord handles POST /v1/patients/:id/medical-records.
//
// @Summary      Add a medical record
// @Tags         patients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Patient id"
// @Param        body  body      addMedicalRecordRequest  true  "Record details"
// @Success      201   {object}  domain.MedicalRecord
// @Failure      404   {object}  map[string]string
// @Router       /v1/patients/{id}/medical-records [post]
func (h *PatientHandler) AddMedicalRecord(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req addMedicalRecordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rec, err := h.service.AddMedicalRecord(c.Request().Context(), ports.AddMedicalRecordInput{
		PatientID:  c.Param("id"),
		Diagnosis:  req.Diagnosis,
		Treatment:  req.Treatment,
		Notes:      req.Notes,
		RecordedBy: userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, rec)
}

// ListMedicalRecords handles GET /v1/patients/:id/medical-records.
//
// @Summary      List a patient's medical records
// @Tags         patients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Patient id"
// @Success      200  {array}   domain.MedicalRecord
// @Failure      404  {object}  map[string]string
// @Router       /v1/patients/{id}/medical-records [get]
func (h *PatientHandler) ListMedicalRecords(c echo.Context) error {
	records, err := h.service.ListMedicalRecords(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if records == nil {
		records = []*domain.MedicalRecord{}
	}
	return c.JSON(http.StatusOK, records)
}
