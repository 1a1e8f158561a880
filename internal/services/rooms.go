package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
)

// RoomService manages room lifecycle and membership.
type RoomService struct {
	rooms repositories.RoomRepository
	users repositories.UserRepository
	guard *AccessGuard
}

// NewRoomService constructs a RoomService.
func NewRoomService(rooms repositories.RoomRepository, users repositories.UserRepository, guard *AccessGuard) *RoomService {
	return &RoomService{rooms: rooms, users: users, guard: guard}
}

// CreateRoom creates a room with the creator as its ADMIN and the given users
// as MEMBERs. All rows are written atomically by the repository.
func (s *RoomService) CreateRoom(ctx context.Context, creatorID int, name string, isGroup bool, description string, participantIDs []int) (models.ChatRoomView, error) {
	if strings.TrimSpace(name) == "" {
		return models.ChatRoomView{}, fmt.Errorf("%w: room name is required", ErrValidation)
	}

	room, err := s.rooms.CreateRoom(ctx, name, isGroup, description, creatorID, participantIDs)
	if err != nil {
		return models.ChatRoomView{}, err
	}
	log.Printf("room created id=%d creator=%d", room.ID, creatorID)

	count, err := s.rooms.CountActiveParticipants(ctx, room.ID)
	if err != nil {
		return models.ChatRoomView{}, err
	}
	return models.ChatRoomView{ChatRoom: room, ParticipantCount: count}, nil
}

// GetUserRooms returns every room where the caller is an active participant,
// each annotated with its member count.
func (s *RoomService) GetUserRooms(ctx context.Context, userID int) ([]models.ChatRoomView, error) {
	rooms, err := s.rooms.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.ChatRoomView, 0, len(rooms))
	for _, room := range rooms {
		count, err := s.rooms.CountActiveParticipants(ctx, room.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, models.ChatRoomView{ChatRoom: room, ParticipantCount: count})
	}
	return views, nil
}

// GetRoomDetails returns the room with its current membership resolved to
// profiles. Deleted accounts are dropped from the list rather than failing
// the call.
func (s *RoomService) GetRoomDetails(ctx context.Context, userID int, roomID int) (models.ChatRoomView, error) {
	ok, err := s.guard.HasAccess(ctx, userID, roomID)
	if err != nil {
		return models.ChatRoomView{}, err
	}
	if !ok {
		return models.ChatRoomView{}, fmt.Errorf("%w: user %d has no access to room %d", ErrUnauthorized, userID, roomID)
	}

	room, err := s.rooms.GetRoom(ctx, roomID)
	if errors.Is(err, repositories.ErrRoomNotFound) {
		return models.ChatRoomView{}, fmt.Errorf("%w: room %d", ErrNotFound, roomID)
	}
	if err != nil {
		return models.ChatRoomView{}, err
	}

	participants, err := s.rooms.ListActiveParticipants(ctx, roomID)
	if err != nil {
		return models.ChatRoomView{}, err
	}

	ids := make([]int, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.UserID)
	}
	users, err := s.users.ListUsers(ctx, ids)
	if err != nil {
		return models.ChatRoomView{}, err
	}
	userByID := make(map[int]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	profiles := make([]models.UserProfile, 0, len(participants))
	for _, p := range participants {
		if u, ok := userByID[p.UserID]; ok {
			profiles = append(profiles, models.ProfileOf(u))
		}
	}

	return models.ChatRoomView{
		ChatRoom:         room,
		ParticipantCount: len(profiles),
		Participants:     profiles,
	}, nil
}

// AddParticipant adds a MEMBER to the room. Only admins may call it; a user
// who is already an active participant is a conflict.
func (s *RoomService) AddParticipant(ctx context.Context, actingUserID int, roomID int, newParticipantID int) error {
	if _, err := s.guard.RequireAdmin(ctx, actingUserID, roomID); err != nil {
		return err
	}

	_, err := s.rooms.GetActiveParticipant(ctx, roomID, newParticipantID)
	if err == nil {
		return fmt.Errorf("%w: user %d is already a participant of room %d", ErrConflict, newParticipantID, roomID)
	}
	if !errors.Is(err, repositories.ErrParticipantNotFound) {
		return err
	}

	if _, err := s.rooms.AddParticipant(ctx, roomID, newParticipantID, models.RoleMember); err != nil {
		return err
	}
	log.Printf("participant %d added to room %d by %d", newParticipantID, roomID, actingUserID)
	return nil
}

// RemoveParticipant deactivates the target's membership. Only admins may call
// it; the row is kept for history.
func (s *RoomService) RemoveParticipant(ctx context.Context, actingUserID int, roomID int, targetUserID int) error {
	if _, err := s.guard.RequireAdmin(ctx, actingUserID, roomID); err != nil {
		return err
	}

	participant, err := s.rooms.GetActiveParticipant(ctx, roomID, targetUserID)
	if errors.Is(err, repositories.ErrParticipantNotFound) {
		return fmt.Errorf("%w: user %d is not a participant of room %d", ErrNotFound, targetUserID, roomID)
	}
	if err != nil {
		return err
	}

	if err := s.rooms.DeactivateParticipant(ctx, participant.ID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return fmt.Errorf("%w: user %d is not a participant of room %d", ErrNotFound, targetUserID, roomID)
		}
		return err
	}
	log.Printf("participant %d removed from room %d by %d", targetUserID, roomID, actingUserID)
	return nil
}
