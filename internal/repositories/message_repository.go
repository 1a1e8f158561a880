package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"chitchat-backend/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines interactions for room messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, roomID int, senderID int, content string, messageType string) (models.Message, error)
	GetMessage(ctx context.Context, messageID int) (models.Message, error)
	ListRoomMessages(ctx context.Context, roomID int, limit int, offset int) ([]models.Message, error)
	CountRoomMessages(ctx context.Context, roomID int) (int, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage appends a message to a room.
func (r *MessageRepo) CreateMessage(ctx context.Context, roomID int, senderID int, content string, messageType string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (room_id, sender_id, content, message_type) VALUES ($1, $2, $3, $4)
         RETURNING id, room_id, sender_id, content, message_type, is_active, sent_at`,
		roomID, senderID, content, messageType).
		Scan(&msg.ID, &msg.RoomID, &msg.SenderID, &msg.Content, &msg.MessageType, &msg.IsActive, &msg.SentAt)
	return msg, err
}

// GetMessage retrieves a single message.
func (r *MessageRepo) GetMessage(ctx context.Context, messageID int) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg,
		`SELECT id, room_id, sender_id, content, message_type, is_active, sent_at FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// ListRoomMessages returns one page of a room's active messages, newest
// first. Ties on sent_at fall back to insertion order so pagination stays
// stable.
func (r *MessageRepo) ListRoomMessages(ctx context.Context, roomID int, limit int, offset int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, room_id, sender_id, content, message_type, is_active, sent_at
         FROM messages
         WHERE room_id=$1 AND is_active
         ORDER BY sent_at DESC, id DESC
         LIMIT $2 OFFSET $3`, roomID, limit, offset)
	return msgs, err
}

// CountRoomMessages counts the active messages of a room.
func (r *MessageRepo) CountRoomMessages(ctx context.Context, roomID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM messages WHERE room_id=$1 AND is_active`, roomID)
	return count, err
}
