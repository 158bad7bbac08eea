package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// AuthController handles login.
type AuthController struct {
	auth services.AuthService
}

// NewAuthController creates a new AuthController.
func NewAuthController(auth services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Login exchanges a credential pair for the bearer envelope.
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	resp, err := ac.auth.Login(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated account.
func (ac *AuthController) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "role": user.Role})
}
