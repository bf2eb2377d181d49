package controllers

import (
	"MediBook/handlers"
	"MediBook/middlewares"
	"MediBook/models"

	"github.com/gin-gonic/gin"
)

// SetupClinicRoutes registers the role-gated clinic routes. Every group
// requires a valid session token; the role middleware narrows each group
// to its audience.
func SetupClinicRoutes(
	router *gin.Engine,
	appointmentHandler *handlers.AppointmentHandler,
	patientHandler *handlers.PatientHandler,
	doctorHandler *handlers.DoctorHandler,
	adminHandler *handlers.AdminHandler,
) {
	patientOnly := middlewares.RequireRole(models.RolePatient)

	appointmentGroup := router.Group("/appointment").Use(
		middlewares.SessionAuthMiddleware(),
	)
	{
		appointmentGroup.POST("/book", patientOnly, appointmentHandler.Book)
		// Cancellation is open to the appointment's patient or doctor;
		// ownership is checked in the service.
		appointmentGroup.POST("/cancel/:id", appointmentHandler.Cancel)
		appointmentGroup.POST("/reschedule/:id", patientOnly, appointmentHandler.Reschedule)
		appointmentGroup.GET("/history", appointmentHandler.History)
	}

	patientGroup := router.Group("/patient").Use(
		middlewares.SessionAuthMiddleware(),
		patientOnly,
	)
	{
		patientGroup.GET("/dashboard", patientHandler.Dashboard)
		patientGroup.GET("/doctors", patientHandler.Doctors)
		patientGroup.GET("/profile", patientHandler.GetProfile)
		patientGroup.POST("/profile", patientHandler.UpsertProfile)
		patientGroup.GET("/prescriptions", patientHandler.Prescriptions)
		patientGroup.GET("/billing", patientHandler.Billing)
	}

	doctorGroup := router.Group("/doctor").Use(
		middlewares.SessionAuthMiddleware(),
		middlewares.RequireRole(models.RoleDoctor),
	)
	{
		doctorGroup.GET("/dashboard", doctorHandler.Dashboard)
		doctorGroup.GET("/patients", doctorHandler.Patients)
		doctorGroup.GET("/patients/:id", doctorHandler.PatientDetail)
		doctorGroup.GET("/transactions", doctorHandler.Transactions)
		doctorGroup.GET("/schedule", doctorHandler.GetSchedule)
		doctorGroup.POST("/schedule", doctorHandler.UpsertSchedule)
		doctorGroup.POST("/appointment/:id/status", doctorHandler.UpdateStatus)
		doctorGroup.POST("/prescribe/:id", doctorHandler.Prescribe)
	}

	adminGroup := router.Group("/admin").Use(
		middlewares.SessionAuthMiddleware(),
		middlewares.RequireRole(models.RoleAdmin),
	)
	{
		adminGroup.GET("/hospital-summary", adminHandler.HospitalSummary)
		adminGroup.GET("/doctor-availability", adminHandler.DoctorAvailability)
	}
}
