// Package api registers the HTTP routes and implements the request handlers.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/taskhive/internal/auth"
	apperrors "github.com/skillsenselab/taskhive/internal/errors"
	"github.com/skillsenselab/taskhive/internal/server"
	"github.com/skillsenselab/taskhive/internal/server/middleware"
	"github.com/skillsenselab/taskhive/internal/validation"
)

// RegisterRequest is the JSON body for POST /api/registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=5,max=72"`
}

// LoginRequest is the form-encoded body for POST /api/login.
type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// AuthHandler serves registration, login, and refresh.
type AuthHandler struct {
	flow *auth.Flow
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(flow *auth.Flow) *AuthHandler {
	return &AuthHandler{flow: flow}
}

// Register handles POST /api/registration.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, validation.ToAppError(err))
		return
	}

	pair, err := h.flow.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, pair)
}

// Login handles POST /api/login. Both unknown email and wrong password yield
// the same generic 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		// Malformed login input is indistinguishable from bad credentials.
		server.RespondWithError(c, apperrors.InvalidCredentials())
		return
	}

	pair, err := h.flow.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, pair)
}

// Refresh handles POST /api/refresh. The refresh middleware has already
// validated the refresh token and resolved the identity; only a new access
// token is issued.
func (h *AuthHandler) Refresh(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		server.RespondWithError(c, apperrors.MissingToken())
		return
	}

	pair, err := h.flow.Refresh(user)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, pair)
}
