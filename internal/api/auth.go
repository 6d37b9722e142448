package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipes/backend/internal/service"
	"github.com/pageza/recipes/backend/internal/types"
)

// AuthHandler handles account registration and token login
type AuthHandler struct {
	auth service.IAuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRoutes mounts the public account routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(service.ErrBadInput)
		return
	}

	if err := h.auth.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusOK)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(service.ErrBadInput)
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, types.LoginResponse{Token: token})
}
