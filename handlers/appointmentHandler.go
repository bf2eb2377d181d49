package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Book creates a pending appointment for the calling patient
func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var in services.BookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, err := h.service.Book(c.Request.Context(), patientID, in)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// Cancel sets an appointment to cancelled for its patient or doctor
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	callerID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	callerRole, err := middlewares.ExtractUserRoleFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), callerID, callerRole, c.Param("id")); err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// Reschedule moves an appointment to a new slot and resets it to pending
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	patientID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var data struct {
		AppointmentDate string `json:"appointment_date"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.Reschedule(c.Request.Context(), patientID, c.Param("id"), data.AppointmentDate); err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment rescheduled"})
}

// History lists the calling patient's appointments
func (h *AppointmentHandler) History(c *gin.Context) {
	patientID, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	appointments, err := h.service.History(c.Request.Context(), patientID)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointments)
}
