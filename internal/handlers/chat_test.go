package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chitchat-backend/internal/mocks"
	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
	"chitchat-backend/internal/services"
)

func setupChatRouter(rooms *mocks.RoomRepositoryMock, messages *mocks.MessageRepositoryMock, users *mocks.UserRepositoryMock) *gin.Engine {
	gin.SetMode(gin.TestMode)

	guard := services.NewAccessGuard(rooms)
	roomService := services.NewRoomService(rooms, users, guard)
	messageService := services.NewMessageService(messages, users, guard)
	handler := NewChatHandler(roomService, messageService, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.GET("/api/chat/rooms", handler.GetUserRooms)
	r.POST("/api/chat/rooms", handler.CreateRoom)
	r.GET("/api/chat/rooms/:room_id", handler.GetRoomDetails)
	r.POST("/api/chat/rooms/:room_id/participants", handler.AddParticipant)
	r.DELETE("/api/chat/rooms/:room_id/participants/:participant_id", handler.RemoveParticipant)
	r.POST("/api/chat/rooms/:room_id/messages", handler.SendMessage)
	r.GET("/api/chat/rooms/:room_id/messages", handler.GetRoomMessages)
	return r
}

func TestCreateRoomSuccess(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	router := setupChatRouter(rooms, new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock))

	rooms.On("CreateRoom", mock.Anything, "Team", true, "", 1, []int{2}).
		Return(models.ChatRoom{ID: 10, Name: "Team", IsGroup: true, CreatorID: 1}, nil).Once()
	rooms.On("CountActiveParticipants", mock.Anything, 10).Return(2, nil).Once()

	body := bytes.NewBufferString(`{"name":"Team","is_group":true,"participant_ids":[2]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/rooms", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp models.ChatRoomView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 2, resp.ParticipantCount)
	rooms.AssertExpectations(t)
}

func TestCreateRoomInvalidBody(t *testing.T) {
	router := setupChatRouter(new(mocks.RoomRepositoryMock), new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock))

	req := httptest.NewRequest(http.MethodPost, "/api/chat/rooms", bytes.NewBufferString(`{"name":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendMessageForbiddenForNonParticipant(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	router := setupChatRouter(rooms, new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{}, repositories.ErrParticipantNotFound).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/chat/rooms/10/messages", bytes.NewBufferString(`{"content":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSendMessageSuccess(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	router := setupChatRouter(rooms, messages, users)

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	messages.On("CreateMessage", mock.Anything, 10, 1, "hello", "TEXT").
		Return(models.Message{ID: 100, RoomID: 10, SenderID: 1, Content: "hello", MessageType: "TEXT", IsActive: true}, nil).Once()
	users.On("GetUser", mock.Anything, 1).
		Return(models.User{ID: 1, Email: "a@x.dev", DisplayName: "A"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/chat/rooms/10/messages", bytes.NewBufferString(`{"content":"hello"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	messages.AssertExpectations(t)
}

func TestGetRoomMessagesSuccess(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	messages := new(mocks.MessageRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	router := setupChatRouter(rooms, messages, users)

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleMember, IsActive: true}, nil).Once()
	messages.On("CountRoomMessages", mock.Anything, 10).Return(1, nil).Once()
	messages.On("ListRoomMessages", mock.Anything, 10, 20, 0).
		Return([]models.Message{{ID: 5, RoomID: 10, SenderID: 1, Content: "hello", IsActive: true}}, nil).Once()
	users.On("ListUsers", mock.Anything, []int{1}).
		Return([]models.User{{ID: 1, DisplayName: "A"}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/chat/rooms/10/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var page models.MessagePage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Equal(t, 1, page.TotalElements)
	require.Len(t, page.Messages, 1)
	require.Equal(t, "hello", page.Messages[0].Content)
}

func TestGetRoomMessagesInvalidID(t *testing.T) {
	router := setupChatRouter(new(mocks.RoomRepositoryMock), new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock))

	req := httptest.NewRequest(http.MethodGet, "/api/chat/rooms/bad/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddParticipantConflictResponse(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	router := setupChatRouter(rooms, new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetActiveParticipant", mock.Anything, 10, 3).
		Return(models.RoomParticipant{ID: 6, RoomID: 10, UserID: 3, Role: models.RoleMember, IsActive: true}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/chat/rooms/10/participants?participant_id=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRemoveParticipantNotFoundResponse(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	router := setupChatRouter(rooms, new(mocks.MessageRepositoryMock), new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetActiveParticipant", mock.Anything, 10, 9).
		Return(models.RoomParticipant{}, repositories.ErrParticipantNotFound).Once()

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/rooms/10/participants/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
