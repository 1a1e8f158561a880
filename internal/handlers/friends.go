package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chitchat-backend/internal/observability"
	"chitchat-backend/internal/services"
	"chitchat-backend/internal/telemetry"
)

// FriendsHandler exposes the friend-request lifecycle endpoints.
type FriendsHandler struct {
	friends *services.FriendsService
	audit   *telemetry.AuditEmitter
}

// NewFriendsHandler constructs a FriendsHandler.
func NewFriendsHandler(friends *services.FriendsService, audit *telemetry.AuditEmitter) *FriendsHandler {
	return &FriendsHandler{friends: friends, audit: audit}
}

// GetFriends handles GET /api/friends.
func (h *FriendsHandler) GetFriends(c *gin.Context) {
	userID := c.GetInt("userID")

	friends, err := h.friends.GetFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

// SendFriendRequest handles POST /api/friends/requests.
func (h *FriendsHandler) SendFriendRequest(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.friends.SendFriendRequest(c.Request.Context(), userID, req.Email); err != nil {
		h.emitAudit(c, "ERROR", "friend request rejected")
		respondError(c, err)
		return
	}

	observability.IncFriendRequestEvent("sent")
	h.emitAudit(c, "INFO", "Friend request sent")
	c.Status(http.StatusNoContent)
}

// GetFriendRequests handles GET /api/friends/requests.
func (h *FriendsHandler) GetFriendRequests(c *gin.Context) {
	userID := c.GetInt("userID")

	requests, err := h.friends.GetFriendRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// AcceptFriendRequest handles PUT /api/friends/requests/:request_id/accept.
func (h *FriendsHandler) AcceptFriendRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.friends.AcceptFriendRequest(c.Request.Context(), userID, requestID); err != nil {
		h.emitAudit(c, "ERROR", "friend request accept denied")
		respondError(c, err)
		return
	}

	observability.IncFriendRequestEvent("accepted")
	h.emitAudit(c, "INFO", "Friend request accepted")
	c.Status(http.StatusNoContent)
}

// RejectFriendRequest handles PUT /api/friends/requests/:request_id/reject.
func (h *FriendsHandler) RejectFriendRequest(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.friends.RejectFriendRequest(c.Request.Context(), userID, requestID); err != nil {
		h.emitAudit(c, "ERROR", "friend request reject denied")
		respondError(c, err)
		return
	}

	observability.IncFriendRequestEvent("rejected")
	h.emitAudit(c, "INFO", "Friend request rejected")
	c.Status(http.StatusNoContent)
}

// RemoveFriend handles DELETE /api/friends/:friend_id.
func (h *FriendsHandler) RemoveFriend(c *gin.Context) {
	friendID, err := strconv.Atoi(c.Param("friend_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid friend id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.friends.RemoveFriend(c.Request.Context(), userID, friendID); err != nil {
		respondError(c, err)
		return
	}

	h.emitAudit(c, "INFO", "Friend removed")
	c.Status(http.StatusNoContent)
}

func (h *FriendsHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), observability.IPFromRequest(c.Request), userIDFromContext(c))
}
