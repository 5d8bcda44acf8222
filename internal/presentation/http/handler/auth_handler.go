package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/jewel-billing/internal/application/service"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/request"
	"github.com/sangkips/jewel-billing/internal/presentation/http/dto/response"
	"github.com/sangkips/jewel-billing/internal/presentation/http/middleware"
	"github.com/sangkips/jewel-billing/pkg/apperror"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles back-office login
// @Summary Login
// @Description Check the admin password and open a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Password:  req.Password,
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"access_token": output.AccessToken,
		"token_type":   "Bearer",
		"session_id":   output.Session.ID,
		"expires_at":   output.Session.ExpiresAt,
	})
}

// Logout revokes the current session
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	if sessionID == uuid.Nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Logout successful", nil)
}
