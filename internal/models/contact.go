package models

import "time"

// ContactStatus is the state of one directed friend edge.
type ContactStatus string

const (
	ContactPending  ContactStatus = "PENDING"
	ContactAccepted ContactStatus = "ACCEPTED"
)

// UserContact is a single directed friend edge. A mutual friendship is two
// rows, one per direction, both ACCEPTED.
type UserContact struct {
	ID        int           `db:"id" json:"id"`
	UserID    int           `db:"user_id" json:"user_id"`
	FriendID  int           `db:"friend_id" json:"friend_id"`
	Status    ContactStatus `db:"status" json:"status"`
	IsActive  bool          `db:"is_active" json:"is_active"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

// FriendRequestView is a pending request enriched with the sender's profile.
type FriendRequestView struct {
	ID         int           `json:"id"`
	SenderID   int           `json:"sender_id"`
	ReceiverID int           `json:"receiver_id"`
	Status     ContactStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	Sender     UserProfile   `json:"sender"`
}
