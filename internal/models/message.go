package models

import "time"

// Message is an append-only chat message. Content never changes after
// creation; IsActive is reserved for soft deletion.
type Message struct {
	ID          int       `db:"id" json:"id"`
	RoomID      int       `db:"room_id" json:"room_id"`
	SenderID    int       `db:"sender_id" json:"sender_id"`
	Content     string    `db:"content" json:"content"`
	MessageType string    `db:"message_type" json:"message_type"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	SentAt      time.Time `db:"sent_at" json:"sent_at"`
}

// MessageView enriches a message with its sender's profile. Sender is nil
// when the sending account no longer exists.
type MessageView struct {
	Message
	Sender *UserProfile `json:"sender,omitempty"`
}

// MessagePage is one slice of a room's history, most recent first.
type MessagePage struct {
	Messages      []MessageView `json:"messages"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int           `json:"total_elements"`
	TotalPages    int           `json:"total_pages"`
}
