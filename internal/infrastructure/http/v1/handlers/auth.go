package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/internal/domain/auth"
	"merx/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.FromUser(result.User),
	})
}

// Me handles GET /auth/me - returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := id.Parse(h.GetUserID(c))
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	user, err := h.service.GetByID(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(user))
}

// CreateUser handles POST /auth/users (admin only).
func (h *AuthHandler) CreateUser(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateUser(ctx, req.Email, req.Password, req.Name, auth.Role(req.Role))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// RegisterRoutes registers auth routes. Login is public, user management is
// restricted to admins by the adminOnly middleware.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup, adminOnly gin.HandlerFunc) {
	public.POST("/login", h.Login)
	protected.GET("/me", h.Me)
	protected.POST("/users", adminOnly, h.CreateUser)
}
