package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chitchat-backend/internal/observability"
	"chitchat-backend/internal/services"
	"chitchat-backend/internal/telemetry"
)

// ChatHandler exposes room and message endpoints.
type ChatHandler struct {
	rooms    *services.RoomService
	messages *services.MessageService
	audit    *telemetry.AuditEmitter
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(rooms *services.RoomService, messages *services.MessageService, audit *telemetry.AuditEmitter) *ChatHandler {
	return &ChatHandler{rooms: rooms, messages: messages, audit: audit}
}

// GetUserRooms handles GET /api/chat/rooms.
func (h *ChatHandler) GetUserRooms(c *gin.Context) {
	userID := c.GetInt("userID")

	rooms, err := h.rooms.GetUserRooms(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// CreateRoom handles POST /api/chat/rooms.
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	userID := c.GetInt("userID")

	var req struct {
		Name           string `json:"name" binding:"required"`
		IsGroup        bool   `json:"is_group"`
		Description    string `json:"description"`
		ParticipantIDs []int  `json:"participant_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), userID, req.Name, req.IsGroup, req.Description, req.ParticipantIDs)
	if err != nil {
		h.emitAudit(c, "ERROR", "room creation failed")
		respondError(c, err)
		return
	}

	h.emitAudit(c, "INFO", "Room created")
	c.JSON(http.StatusCreated, room)
}

// GetRoomDetails handles GET /api/chat/rooms/:room_id.
func (h *ChatHandler) GetRoomDetails(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	userID := c.GetInt("userID")

	room, err := h.rooms.GetRoomDetails(c.Request.Context(), userID, roomID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// AddParticipant handles POST /api/chat/rooms/:room_id/participants.
func (h *ChatHandler) AddParticipant(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	participantID, err := strconv.Atoi(c.Query("participant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.rooms.AddParticipant(c.Request.Context(), userID, roomID, participantID); err != nil {
		h.emitAudit(c, "ERROR", "add participant denied")
		respondError(c, err)
		return
	}

	h.emitAudit(c, "INFO", "Participant added")
	c.Status(http.StatusNoContent)
}

// RemoveParticipant handles DELETE /api/chat/rooms/:room_id/participants/:participant_id.
func (h *ChatHandler) RemoveParticipant(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	participantID, err := strconv.Atoi(c.Param("participant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid participant id"})
		return
	}
	userID := c.GetInt("userID")

	if err := h.rooms.RemoveParticipant(c.Request.Context(), userID, roomID, participantID); err != nil {
		h.emitAudit(c, "ERROR", "remove participant denied")
		respondError(c, err)
		return
	}

	h.emitAudit(c, "INFO", "Participant removed")
	c.Status(http.StatusNoContent)
}

// SendMessage handles POST /api/chat/rooms/:room_id/messages.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	userID := c.GetInt("userID")

	var req struct {
		Content     string `json:"content" binding:"required"`
		MessageType string `json:"message_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.emitAudit(c, "ERROR", "invalid request payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messages.SendMessage(c.Request.Context(), userID, roomID, req.Content, req.MessageType)
	if err != nil {
		h.emitAudit(c, "ERROR", "message rejected")
		respondError(c, err)
		return
	}

	observability.IncMessageSent()
	observability.PublishEvent(c.Request.Context(), "chat.message.sent",
		observability.EventEnvelope{EventType: "domain", EventName: "message_sent", Payload: msg},
		observability.BuildHeaders(requestIDFromContext(c), ""))

	h.emitAudit(c, "INFO", "Message sent")
	c.JSON(http.StatusCreated, msg)
}

// GetRoomMessages handles GET /api/chat/rooms/:room_id/messages.
func (h *ChatHandler) GetRoomMessages(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("room_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	userID := c.GetInt("userID")

	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}

	messages, err := h.messages.GetRoomMessages(c.Request.Context(), userID, roomID, page, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) emitAudit(c *gin.Context, level, text string) {
	if h.audit == nil {
		return
	}
	h.audit.Emit(c.Request.Context(), level, text, requestIDFromContext(c), observability.IPFromRequest(c.Request), userIDFromContext(c))
}
