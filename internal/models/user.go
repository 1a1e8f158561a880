package models

import "time"

// User is an identity record. It is owned by the auth subsystem and is
// read-only everywhere in this service.
type User struct {
	ID          int       `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"display_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// UserProfile is the public view of a user returned by the API.
type UserProfile struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ProfileOf trims a User down to its public fields.
func ProfileOf(u User) UserProfile {
	return UserProfile{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}
