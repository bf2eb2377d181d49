package handlers

import (
	"MediBook/middlewares"
	"MediBook/models"
	"MediBook/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService      services.DoctorService
	appointmentService services.AppointmentService
	dashboardService   services.DashboardService
}

func NewDoctorHandler(
	doctorService services.DoctorService,
	appointmentService services.AppointmentService,
	dashboardService services.DashboardService,
) *DoctorHandler {
	return &DoctorHandler{
		doctorService:      doctorService,
		appointmentService: appointmentService,
		dashboardService:   dashboardService,
	}
}

func callerID(c *gin.Context) (string, bool) {
	id, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return id, true
}

// Dashboard returns the doctor's appointments plus earnings rollups
func (h *DoctorHandler) Dashboard(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.ForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Patients returns the doctor's de-duplicated patient roster
func (h *DoctorHandler) Patients(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	roster, err := h.doctorService.Roster(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, roster)
}

// PatientDetail returns one patient's profile, shared appointment history and
// prescriptions
func (h *DoctorHandler) PatientDetail(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	detail, err := h.doctorService.PatientDetail(c.Request.Context(), doctorID, c.Param("id"))
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Transactions lists the doctor's completed appointments with the fee charged
func (h *DoctorHandler) Transactions(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	appointments, fee, err := h.doctorService.Transactions(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": appointments, "fee": fee})
}

// GetSchedule returns the doctor's schedule
func (h *DoctorHandler) GetSchedule(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	schedule, err := h.doctorService.GetSchedule(c.Request.Context(), doctorID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	if schedule == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// UpsertSchedule creates or updates the doctor's schedule
func (h *DoctorHandler) UpsertSchedule(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.ScheduleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	schedule, err := h.doctorService.UpsertSchedule(c.Request.Context(), doctorID, in)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// UpdateStatus confirms or cancels one of the doctor's appointments
func (h *DoctorHandler) UpdateStatus(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	var data struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.appointmentService.SetStatus(c.Request.Context(), doctorID, c.Param("id"), data.Status); err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// Prescribe completes an appointment and issues its prescription
func (h *DoctorHandler) Prescribe(c *gin.Context) {
	doctorID, ok := callerID(c)
	if !ok {
		return
	}

	var data struct {
		Diagnosis string            `json:"diagnosis"`
		Medicines []models.Medicine `json:"medicines"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	prescription, err := h.appointmentService.CompleteWithPrescription(
		c.Request.Context(), doctorID, c.Param("id"), data.Diagnosis, data.Medicines)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prescription)
}
