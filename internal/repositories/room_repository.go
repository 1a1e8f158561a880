package repositories

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/jmoiron/sqlx"

	"chitchat-backend/internal/models"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant not found")
)

// RoomRepository abstracts room and participant persistence.
type RoomRepository interface {
	CreateRoom(ctx context.Context, name string, isGroup bool, description string, creatorID int, participantIDs []int) (models.ChatRoom, error)
	GetRoom(ctx context.Context, roomID int) (models.ChatRoom, error)
	ListRoomsForUser(ctx context.Context, userID int) ([]models.ChatRoom, error)
	GetActiveParticipant(ctx context.Context, roomID int, userID int) (models.RoomParticipant, error)
	ListActiveParticipants(ctx context.Context, roomID int) ([]models.RoomParticipant, error)
	CountActiveParticipants(ctx context.Context, roomID int) (int, error)
	AddParticipant(ctx context.Context, roomID int, userID int, role models.ParticipantRole) (models.RoomParticipant, error)
	DeactivateParticipant(ctx context.Context, participantID int) error
}

// RoomRepo is a sqlx implementation of RoomRepository.
type RoomRepo struct {
	db *sqlx.DB
}

// NewRoomRepo constructs a RoomRepo.
func NewRoomRepo(db *sqlx.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// CreateRoom creates the room row, an ADMIN row for the creator and a MEMBER
// row for every other participant in one transaction. A failure on any write
// rolls back the whole call, so a room is never observable without its
// participants.
func (r *RoomRepo) CreateRoom(ctx context.Context, name string, isGroup bool, description string, creatorID int, participantIDs []int) (models.ChatRoom, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.ChatRoom{}, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var room models.ChatRoom
	if err = tx.QueryRowxContext(ctx,
		`INSERT INTO chat_rooms (name, is_group, creator_id, description) VALUES ($1, $2, $3, $4)
         RETURNING id, name, is_group, creator_id, description, created_at`,
		name, isGroup, creatorID, description).
		Scan(&room.ID, &room.Name, &room.IsGroup, &room.CreatorID, &room.Description, &room.CreatedAt); err != nil {
		return models.ChatRoom{}, err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO room_participants (room_id, user_id, role) VALUES ($1, $2, $3)`,
		room.ID, creatorID, models.RoleAdmin); err != nil {
		return models.ChatRoom{}, err
	}

	// dedupe members; the creator is never double-added
	memberSet := map[int]struct{}{}
	for _, id := range participantIDs {
		if id != creatorID {
			memberSet[id] = struct{}{}
		}
	}
	members := make([]int, 0, len(memberSet))
	for id := range memberSet {
		members = append(members, id)
	}
	sort.Ints(members)

	for _, id := range members {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO room_participants (room_id, user_id, role) VALUES ($1, $2, $3)`,
			room.ID, id, models.RoleMember); err != nil {
			return models.ChatRoom{}, err
		}
	}

	if err = tx.Commit(); err != nil {
		return models.ChatRoom{}, err
	}
	return room, nil
}

// GetRoom fetches a single room.
func (r *RoomRepo) GetRoom(ctx context.Context, roomID int) (models.ChatRoom, error) {
	var room models.ChatRoom
	err := r.db.GetContext(ctx, &room,
		`SELECT id, name, is_group, creator_id, description, created_at FROM chat_rooms WHERE id=$1`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ChatRoom{}, ErrRoomNotFound
	}
	return room, err
}

// ListRoomsForUser returns rooms where the user has an active participant row.
func (r *RoomRepo) ListRoomsForUser(ctx context.Context, userID int) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := r.db.SelectContext(ctx, &rooms,
		`SELECT c.id, c.name, c.is_group, c.creator_id, c.description, c.created_at
         FROM chat_rooms c
         INNER JOIN room_participants rp ON rp.room_id = c.id
         WHERE rp.user_id=$1 AND rp.is_active
         ORDER BY c.created_at DESC`, userID)
	return rooms, err
}

// GetActiveParticipant fetches the active row for a (room, user) pair.
func (r *RoomRepo) GetActiveParticipant(ctx context.Context, roomID int, userID int) (models.RoomParticipant, error) {
	var participant models.RoomParticipant
	err := r.db.GetContext(ctx, &participant,
		`SELECT id, room_id, user_id, role, is_active, joined_at
         FROM room_participants WHERE room_id=$1 AND user_id=$2 AND is_active`, roomID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RoomParticipant{}, ErrParticipantNotFound
	}
	return participant, err
}

// ListActiveParticipants returns the current membership of a room.
func (r *RoomRepo) ListActiveParticipants(ctx context.Context, roomID int) ([]models.RoomParticipant, error) {
	var participants []models.RoomParticipant
	err := r.db.SelectContext(ctx, &participants,
		`SELECT id, room_id, user_id, role, is_active, joined_at
         FROM room_participants WHERE room_id=$1 AND is_active ORDER BY joined_at ASC, id ASC`, roomID)
	return participants, err
}

// CountActiveParticipants counts current members of a room.
func (r *RoomRepo) CountActiveParticipants(ctx context.Context, roomID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM room_participants WHERE room_id=$1 AND is_active`, roomID)
	return count, err
}

// AddParticipant inserts a new active participant row.
func (r *RoomRepo) AddParticipant(ctx context.Context, roomID int, userID int, role models.ParticipantRole) (models.RoomParticipant, error) {
	var participant models.RoomParticipant
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO room_participants (room_id, user_id, role) VALUES ($1, $2, $3)
         RETURNING id, room_id, user_id, role, is_active, joined_at`,
		roomID, userID, role).
		Scan(&participant.ID, &participant.RoomID, &participant.UserID, &participant.Role, &participant.IsActive, &participant.JoinedAt)
	return participant, err
}

// DeactivateParticipant clears the active flag; the row stays for history.
func (r *RoomRepo) DeactivateParticipant(ctx context.Context, participantID int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_participants SET is_active = FALSE WHERE id=$1 AND is_active`, participantID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrParticipantNotFound
	}
	return nil
}
