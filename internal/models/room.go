package models

import "time"

// ParticipantRole is the role a user holds inside a room.
type ParticipantRole string

const (
	RoleAdmin  ParticipantRole = "ADMIN"
	RoleMember ParticipantRole = "MEMBER"
)

// ChatRoom represents a chat room. Immutable after creation.
type ChatRoom struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	IsGroup     bool      `db:"is_group" json:"is_group"`
	CreatorID   int       `db:"creator_id" json:"creator_id"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// RoomParticipant ties a user to a room with a role. Membership is ended by
// clearing IsActive, never by deleting the row.
type RoomParticipant struct {
	ID       int             `db:"id" json:"id"`
	RoomID   int             `db:"room_id" json:"room_id"`
	UserID   int             `db:"user_id" json:"user_id"`
	Role     ParticipantRole `db:"role" json:"role"`
	IsActive bool            `db:"is_active" json:"is_active"`
	JoinedAt time.Time       `db:"joined_at" json:"joined_at"`
}

// ChatRoomView is the API view of a room, annotated with its current
// membership.
type ChatRoomView struct {
	ChatRoom
	ParticipantCount int           `json:"participant_count"`
	Participants     []UserProfile `json:"participants,omitempty"`
}
