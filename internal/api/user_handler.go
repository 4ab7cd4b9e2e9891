package api

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/taskhive/internal/server"
	"github.com/skillsenselab/taskhive/internal/users"
)

// UserHandler serves the admin user listing.
type UserHandler struct {
	store users.Store
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(store users.Store) *UserHandler {
	return &UserHandler{store: store}
}

// List handles GET /api/users. Admin only.
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, gin.H{"items": list})
}
