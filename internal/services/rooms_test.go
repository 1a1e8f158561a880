package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chitchat-backend/internal/mocks"
	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
)

func newRoomService(rooms *mocks.RoomRepositoryMock, users *mocks.UserRepositoryMock) *RoomService {
	return NewRoomService(rooms, users, NewAccessGuard(rooms))
}

func TestCreateRoomCreatesAdminAndMembers(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	svc := newRoomService(rooms, users)

	rooms.On("CreateRoom", mock.Anything, "Team", true, "", 1, []int{2}).
		Return(models.ChatRoom{ID: 10, Name: "Team", IsGroup: true, CreatorID: 1}, nil).Once()
	rooms.On("CountActiveParticipants", mock.Anything, 10).Return(2, nil).Once()

	view, err := svc.CreateRoom(context.Background(), 1, "Team", true, "", []int{2})
	require.NoError(t, err)
	require.Equal(t, 10, view.ID)
	require.Equal(t, 2, view.ParticipantCount)
	rooms.AssertExpectations(t)
}

func TestCreateRoomRequiresName(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	_, err := svc.CreateRoom(context.Background(), 1, "   ", true, "", nil)
	require.ErrorIs(t, err, ErrValidation)
	rooms.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddParticipantRequiresAdmin(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 2).
		Return(models.RoomParticipant{ID: 5, RoomID: 10, UserID: 2, Role: models.RoleMember, IsActive: true}, nil).Once()

	err := svc.AddParticipant(context.Background(), 2, 10, 3)
	require.ErrorIs(t, err, ErrUnauthorized)
	rooms.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddParticipantConflict(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetActiveParticipant", mock.Anything, 10, 3).
		Return(models.RoomParticipant{ID: 6, RoomID: 10, UserID: 3, Role: models.RoleMember, IsActive: true}, nil).Once()

	err := svc.AddParticipant(context.Background(), 1, 10, 3)
	require.ErrorIs(t, err, ErrConflict)
	rooms.AssertNotCalled(t, "AddParticipant", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddParticipantSuccess(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetActiveParticipant", mock.Anything, 10, 3).
		Return(models.RoomParticipant{}, repositories.ErrParticipantNotFound).Once()
	rooms.On("AddParticipant", mock.Anything, 10, 3, models.RoleMember).
		Return(models.RoomParticipant{ID: 7, RoomID: 10, UserID: 3, Role: models.RoleMember, IsActive: true}, nil).Once()

	err := svc.AddParticipant(context.Background(), 1, 10, 3)
	require.NoError(t, err)
	rooms.AssertExpectations(t)
}

func TestRemoveParticipantNotFound(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetActiveParticipant", mock.Anything, 10, 9).
		Return(models.RoomParticipant{}, repositories.ErrParticipantNotFound).Once()

	err := svc.RemoveParticipant(context.Background(), 1, 10, 9)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveParticipantSoftRemoves(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetActiveParticipant", mock.Anything, 10, 3).
		Return(models.RoomParticipant{ID: 6, RoomID: 10, UserID: 3, Role: models.RoleMember, IsActive: true}, nil).Once()
	rooms.On("DeactivateParticipant", mock.Anything, 6).Return(nil).Once()

	err := svc.RemoveParticipant(context.Background(), 1, 10, 3)
	require.NoError(t, err)
	rooms.AssertExpectations(t)
}

func TestGetRoomDetailsUnauthorized(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("GetActiveParticipant", mock.Anything, 10, 5).
		Return(models.RoomParticipant{}, repositories.ErrParticipantNotFound).Once()

	_, err := svc.GetRoomDetails(context.Background(), 5, 10)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetRoomDetailsSkipsDeletedAccounts(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	users := new(mocks.UserRepositoryMock)
	svc := newRoomService(rooms, users)

	rooms.On("GetActiveParticipant", mock.Anything, 10, 1).
		Return(models.RoomParticipant{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true}, nil).Once()
	rooms.On("GetRoom", mock.Anything, 10).
		Return(models.ChatRoom{ID: 10, Name: "Team", CreatorID: 1}, nil).Once()
	rooms.On("ListActiveParticipants", mock.Anything, 10).
		Return([]models.RoomParticipant{
			{ID: 4, RoomID: 10, UserID: 1, Role: models.RoleAdmin, IsActive: true},
			{ID: 6, RoomID: 10, UserID: 3, Role: models.RoleMember, IsActive: true},
		}, nil).Once()
	users.On("ListUsers", mock.Anything, []int{1, 3}).
		Return([]models.User{{ID: 1, Email: "a@x.dev", DisplayName: "A"}}, nil).Once()

	view, err := svc.GetRoomDetails(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, view.ParticipantCount)
	require.Len(t, view.Participants, 1)
	require.Equal(t, 1, view.Participants[0].ID)
}

func TestGetUserRoomsAnnotatesCounts(t *testing.T) {
	rooms := new(mocks.RoomRepositoryMock)
	svc := newRoomService(rooms, new(mocks.UserRepositoryMock))

	rooms.On("ListRoomsForUser", mock.Anything, 1).
		Return([]models.ChatRoom{{ID: 10, Name: "Team"}, {ID: 11, Name: "Chess"}}, nil).Once()
	rooms.On("CountActiveParticipants", mock.Anything, 10).Return(3, nil).Once()
	rooms.On("CountActiveParticipants", mock.Anything, 11).Return(2, nil).Once()

	views, err := svc.GetUserRooms(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, 3, views[0].ParticipantCount)
	require.Equal(t, 2, views[1].ParticipantCount)
}
