package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"chitchat-backend/internal/services"
)

// UserHandler exposes user search endpoints.
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// SearchUsers handles GET /api/users/search.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	userID := c.GetInt("userID")

	users, err := h.users.SearchUsers(c.Request.Context(), c.Query("q"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// FindUser handles GET /api/users/find.
func (h *UserHandler) FindUser(c *gin.Context) {
	userID := c.GetInt("userID")

	result, err := h.users.FindUser(c.Request.Context(), c.Query("q"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
