package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
)

type UserRepositoryMock struct {
	mock.Mock
}

func (m *UserRepositoryMock) GetUser(ctx context.Context, userID int) (models.User, error) {
	args := m.Called(ctx, userID)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	var user models.User
	if val := args.Get(0); val != nil {
		user = val.(models.User)
	}
	return user, args.Error(1)
}

func (m *UserRepositoryMock) ListUsers(ctx context.Context, ids []int) ([]models.User, error) {
	args := m.Called(ctx, ids)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

func (m *UserRepositoryMock) SearchUsers(ctx context.Context, query string, excludeID int, limit int) ([]models.User, error) {
	args := m.Called(ctx, query, excludeID, limit)
	var users []models.User
	if val := args.Get(0); val != nil {
		users = val.([]models.User)
	}
	return users, args.Error(1)
}

type RoomRepositoryMock struct {
	mock.Mock
}

func (m *RoomRepositoryMock) CreateRoom(ctx context.Context, name string, isGroup bool, description string, creatorID int, participantIDs []int) (models.ChatRoom, error) {
	args := m.Called(ctx, name, isGroup, description, creatorID, participantIDs)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) GetRoom(ctx context.Context, roomID int) (models.ChatRoom, error) {
	args := m.Called(ctx, roomID)
	var room models.ChatRoom
	if val := args.Get(0); val != nil {
		room = val.(models.ChatRoom)
	}
	return room, args.Error(1)
}

func (m *RoomRepositoryMock) ListRoomsForUser(ctx context.Context, userID int) ([]models.ChatRoom, error) {
	args := m.Called(ctx, userID)
	var rooms []models.ChatRoom
	if val := args.Get(0); val != nil {
		rooms = val.([]models.ChatRoom)
	}
	return rooms, args.Error(1)
}

func (m *RoomRepositoryMock) GetActiveParticipant(ctx context.Context, roomID int, userID int) (models.RoomParticipant, error) {
	args := m.Called(ctx, roomID, userID)
	var participant models.RoomParticipant
	if val := args.Get(0); val != nil {
		participant = val.(models.RoomParticipant)
	}
	return participant, args.Error(1)
}

func (m *RoomRepositoryMock) ListActiveParticipants(ctx context.Context, roomID int) ([]models.RoomParticipant, error) {
	args := m.Called(ctx, roomID)
	var participants []models.RoomParticipant
	if val := args.Get(0); val != nil {
		participants = val.([]models.RoomParticipant)
	}
	return participants, args.Error(1)
}

func (m *RoomRepositoryMock) CountActiveParticipants(ctx context.Context, roomID int) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

func (m *RoomRepositoryMock) AddParticipant(ctx context.Context, roomID int, userID int, role models.ParticipantRole) (models.RoomParticipant, error) {
	args := m.Called(ctx, roomID, userID, role)
	var participant models.RoomParticipant
	if val := args.Get(0); val != nil {
		participant = val.(models.RoomParticipant)
	}
	return participant, args.Error(1)
}

func (m *RoomRepositoryMock) DeactivateParticipant(ctx context.Context, participantID int) error {
	args := m.Called(ctx, participantID)
	return args.Error(0)
}

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) CreateMessage(ctx context.Context, roomID int, senderID int, content string, messageType string) (models.Message, error) {
	args := m.Called(ctx, roomID, senderID, content, messageType)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) ListRoomMessages(ctx context.Context, roomID int, limit int, offset int) ([]models.Message, error) {
	args := m.Called(ctx, roomID, limit, offset)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *MessageRepositoryMock) CountRoomMessages(ctx context.Context, roomID int) (int, error) {
	args := m.Called(ctx, roomID)
	return args.Int(0), args.Error(1)
}

type ContactRepositoryMock struct {
	mock.Mock
}

func (m *ContactRepositoryMock) CreateContact(ctx context.Context, userID int, friendID int, status models.ContactStatus) (models.UserContact, error) {
	args := m.Called(ctx, userID, friendID, status)
	var contact models.UserContact
	if val := args.Get(0); val != nil {
		contact = val.(models.UserContact)
	}
	return contact, args.Error(1)
}

func (m *ContactRepositoryMock) GetContact(ctx context.Context, contactID int) (models.UserContact, error) {
	args := m.Called(ctx, contactID)
	var contact models.UserContact
	if val := args.Get(0); val != nil {
		contact = val.(models.UserContact)
	}
	return contact, args.Error(1)
}

func (m *ContactRepositoryMock) FindContact(ctx context.Context, userID int, friendID int) (models.UserContact, error) {
	args := m.Called(ctx, userID, friendID)
	var contact models.UserContact
	if val := args.Get(0); val != nil {
		contact = val.(models.UserContact)
	}
	return contact, args.Error(1)
}

func (m *ContactRepositoryMock) ListFriends(ctx context.Context, userID int) ([]models.UserContact, error) {
	args := m.Called(ctx, userID)
	var contacts []models.UserContact
	if val := args.Get(0); val != nil {
		contacts = val.([]models.UserContact)
	}
	return contacts, args.Error(1)
}

func (m *ContactRepositoryMock) ListPendingRequests(ctx context.Context, userID int) ([]models.UserContact, error) {
	args := m.Called(ctx, userID)
	var contacts []models.UserContact
	if val := args.Get(0); val != nil {
		contacts = val.([]models.UserContact)
	}
	return contacts, args.Error(1)
}

func (m *ContactRepositoryMock) AcceptRequest(ctx context.Context, requestID int, recipientID int, senderID int) error {
	args := m.Called(ctx, requestID, recipientID, senderID)
	return args.Error(0)
}

func (m *ContactRepositoryMock) DeleteRequest(ctx context.Context, requestID int) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

func (m *ContactRepositoryMock) DeleteContactPair(ctx context.Context, userID int, friendID int) error {
	args := m.Called(ctx, userID, friendID)
	return args.Error(0)
}

var _ repositories.UserRepository = (*UserRepositoryMock)(nil)
var _ repositories.RoomRepository = (*RoomRepositoryMock)(nil)
var _ repositories.MessageRepository = (*MessageRepositoryMock)(nil)
var _ repositories.ContactRepository = (*ContactRepositoryMock)(nil)
