package controllers

import (
	"MediBook/handlers"
	"MediBook/middlewares"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes initializes all authentication routes directly on the router
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	// Public routes: No authentication required
	router.POST("/auth/register", ac.Handler.Register)
	router.POST("/auth/login", ac.Handler.Login)
	router.POST("/auth/forgot-password", ac.Handler.ForgotPassword)
	router.POST("/auth/reset-password", ac.Handler.ResetPassword)
	router.POST("/auth/refresh-token", ac.Handler.RefreshToken)

	// Protected routes: Requires a valid session token
	authGroup := router.Group("/auth").Use(middlewares.SessionAuthMiddleware())
	{
		authGroup.POST("/logout", ac.Handler.Logout)
	}
}
