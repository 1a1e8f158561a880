package services

import (
	"context"
	"errors"
	"fmt"

	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
)

// AccessGuard centralizes room authorization. Every mutating room operation
// goes through it before touching state.
type AccessGuard struct {
	rooms repositories.RoomRepository
}

// NewAccessGuard constructs an AccessGuard.
func NewAccessGuard(rooms repositories.RoomRepository) *AccessGuard {
	return &AccessGuard{rooms: rooms}
}

// HasAccess reports whether the user holds an active participant row for the
// room. Side-effect free.
func (g *AccessGuard) HasAccess(ctx context.Context, userID int, roomID int) (bool, error) {
	_, err := g.rooms.GetActiveParticipant(ctx, roomID, userID)
	if errors.Is(err, repositories.ErrParticipantNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RequireAdmin returns the caller's role when they are an active ADMIN of the
// room and ErrUnauthorized otherwise.
func (g *AccessGuard) RequireAdmin(ctx context.Context, userID int, roomID int) (models.ParticipantRole, error) {
	participant, err := g.rooms.GetActiveParticipant(ctx, roomID, userID)
	if errors.Is(err, repositories.ErrParticipantNotFound) {
		return "", fmt.Errorf("%w: user %d has no access to room %d", ErrUnauthorized, userID, roomID)
	}
	if err != nil {
		return "", err
	}
	if participant.Role != models.RoleAdmin {
		return "", fmt.Errorf("%w: user %d is not an admin of room %d", ErrUnauthorized, userID, roomID)
	}
	return participant.Role, nil
}
