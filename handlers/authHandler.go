package handlers

import (
	"MediBook/middlewares"
	"MediBook/services"
	"MediBook/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles new account registration
func (h *AuthHandler) Register(c *gin.Context) {
	var in utils.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if in.Role == "" {
		in.Role = "patient"
	}

	user, err := h.authService.Register(c.Request.Context(), in)
	if err != nil {
		middlewares.DomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email})
}

// Login authenticates the user, sets session cookies and returns the role's
// home route.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, accessToken, refreshToken, err := h.authService.Login(
		c.Request.Context(), credentials.Email, credentials.Password, credentials.Role)
	if err != nil {
		// Invalid credentials and role mismatches read the same to a caller
		// probing for accounts.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email, password or role"})
		return
	}

	utils.SetAuthCookies(c, accessToken, refreshToken)
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"role":         user.Role.Name,
		"home":         roleHome(user.Role.Name),
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie("refreshToken")
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing refresh token"})
		return
	}

	accessToken, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

// Logout clears the session cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearAuthCookies(c)
	c.Status(http.StatusOK)
}

// ForgotPassword emails a password reset code
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var data struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.authService.SendResetCode(c.Request.Context(), data.Email); err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// ResetPassword sets a new password given a valid reset code
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var data struct {
		Email       string `json:"email"`
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), data.Email, data.Code, data.NewPassword); err != nil {
		middlewares.DomainError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func roleHome(role string) string {
	switch role {
	case "doctor":
		return "/doctor/dashboard"
	case "admin":
		return "/admin/hospital-summary"
	default:
		return "/patient/dashboard"
	}
}
