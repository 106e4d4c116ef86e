package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/NetindoGit/netindo_api/internal/service"
	"github.com/NetindoGit/netindo_api/internal/utils"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Email and password are required")
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidCredentials) {
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		return
	}

	utils.Success(c, 200, "Login successful", resp)
}

// Me handles GET /v1/auth/me. The JWT middleware has already validated the
// token and stashed the claims.
func (h *AuthHandler) Me(c *gin.Context) {
	utils.Success(c, 200, "Session valid", gin.H{
		"userId": c.GetInt("user_id"),
		"email":  c.GetString("email"),
	})
}
