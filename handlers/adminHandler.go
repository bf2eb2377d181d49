package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	dashboardService services.DashboardService
	doctorService    services.DoctorService
}

func NewAdminHandler(dashboardService services.DashboardService, doctorService services.DoctorService) *AdminHandler {
	return &AdminHandler{dashboardService: dashboardService, doctorService: doctorService}
}

// HospitalSummary returns clinic-wide counts for the admin overview
func (h *AdminHandler) HospitalSummary(c *gin.Context) {
	summary, err := h.dashboardService.Hospital(c.Request.Context())
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// DoctorAvailability lists every doctor with their published schedule
func (h *AdminHandler) DoctorAvailability(c *gin.Context) {
	doctors, err := h.doctorService.ListDoctors(c.Request.Context(), "")
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}
