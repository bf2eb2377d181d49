package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patientService   services.PatientService
	doctorService    services.DoctorService
	dashboardService services.DashboardService
}

func NewPatientHandler(
	patientService services.PatientService,
	doctorService services.DoctorService,
	dashboardService services.DashboardService,
) *PatientHandler {
	return &PatientHandler{
		patientService:   patientService,
		doctorService:    doctorService,
		dashboardService: dashboardService,
	}
}

// Dashboard returns the patient's appointments plus spending rollups
func (h *PatientHandler) Dashboard(c *gin.Context) {
	patientID, ok := callerID(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.ForPatient(c.Request.Context(), patientID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// Doctors lists bookable doctors, excluding the caller
func (h *PatientHandler) Doctors(c *gin.Context) {
	patientID, ok := callerID(c)
	if !ok {
		return
	}

	doctors, err := h.doctorService.ListDoctors(c.Request.Context(), patientID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

// GetProfile returns the patient's own profile
func (h *PatientHandler) GetProfile(c *gin.Context) {
	patientID, ok := callerID(c)
	if !ok {
		return
	}

	profile, err := h.patientService.GetProfile(c.Request.Context(), patientID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	if profile == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfile creates or updates the patient's own profile
func (h *PatientHandler) UpsertProfile(c *gin.Context) {
	patientID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.patientService.UpsertProfile(c.Request.Context(), patientID, in)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Prescriptions lists the patient's prescriptions
func (h *PatientHandler) Prescriptions(c *gin.Context) {
	patientID, ok := callerID(c)
	if !ok {
		return
	}

	prescriptions, err := h.patientService.Prescriptions(c.Request.Context(), patientID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}

// Billing returns the patient's billing statement over completed appointments
func (h *PatientHandler) Billing(c *gin.Context) {
	patientID, ok := callerID(c)
	if !ok {
		return
	}

	items, total, err := h.patientService.Billing(c.Request.Context(), patientID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total})
}
