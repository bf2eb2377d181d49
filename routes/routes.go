package routes

import (
	"MediBook/cache"
	"MediBook/config"
	"MediBook/controllers"
	"MediBook/handlers"
	"MediBook/middlewares"
	"MediBook/repositories"
	"MediBook/services"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	// Create a Gin router
	router := gin.Default()

	// Create and apply CORS middleware configuration
	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://medibook.example.com"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	// Apply rate limiter middleware
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15, // 15 requests per second per client
		Burst:             30, // Burst of 30
	}))

	// Apply logging middleware
	router.Use(middlewares.LoggingMiddleware())

	// Initialize repositories, services, and handlers
	userRepo := repositories.NewUserRepository(db, cache)
	profileRepo := repositories.NewProfileRepository(cache)
	doctorRepo := repositories.NewDoctorRepository(cache)
	appointmentRepo := repositories.NewAppointmentRepository(cache)
	prescriptionRepo := repositories.NewPrescriptionRepository()

	authService := services.NewAuthService(userRepo, profileRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo)
	doctorService := services.NewDoctorService(doctorRepo, appointmentRepo, profileRepo, prescriptionRepo)
	patientService := services.NewPatientService(profileRepo, appointmentRepo, prescriptionRepo)
	dashboardService := services.NewDashboardService(appointmentRepo, doctorRepo, profileRepo, prescriptionRepo)

	authHandler := handlers.NewAuthHandler(authService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	patientHandler := handlers.NewPatientHandler(patientService, doctorService, dashboardService)
	doctorHandler := handlers.NewDoctorHandler(doctorService, appointmentService, dashboardService)
	adminHandler := handlers.NewAdminHandler(dashboardService, doctorService)

	// Register routes
	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupClinicRoutes(router, appointmentHandler, patientHandler, doctorHandler, adminHandler)

	controllers.SetupRootRoute(router)

	return router
}
