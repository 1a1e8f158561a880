package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
)

const searchResultLimit = 20

// UserLookup is a single user annotated with their friendship status relative
// to the caller.
type UserLookup struct {
	User             models.UserProfile `json:"user"`
	FriendshipStatus string             `json:"friendship_status"`
}

// UserService exposes user search over the identity records.
type UserService struct {
	users    repositories.UserRepository
	contacts repositories.ContactRepository
}

// NewUserService constructs a UserService.
func NewUserService(users repositories.UserRepository, contacts repositories.ContactRepository) *UserService {
	return &UserService{users: users, contacts: contacts}
}

// SearchUsers matches users by email or display-name substring, excluding the
// caller.
func (s *UserService) SearchUsers(ctx context.Context, query string, callerID int) ([]models.UserProfile, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrValidation)
	}

	users, err := s.users.SearchUsers(ctx, query, callerID, searchResultLimit)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, models.ProfileOf(u))
	}
	return profiles, nil
}

// FindUser looks a user up by exact email and reports the caller's
// relationship to them: NONE, PENDING, or ACCEPTED.
func (s *UserService) FindUser(ctx context.Context, query string, callerID int) (UserLookup, error) {
	if strings.TrimSpace(query) == "" {
		return UserLookup{}, fmt.Errorf("%w: lookup query is required", ErrValidation)
	}

	user, err := s.users.GetUserByEmail(ctx, query)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return UserLookup{}, fmt.Errorf("%w: no user matching %q", ErrNotFound, query)
	}
	if err != nil {
		return UserLookup{}, err
	}

	status := "NONE"
	contact, err := s.contacts.FindContact(ctx, callerID, user.ID)
	if err == nil {
		status = string(contact.Status)
	} else if !errors.Is(err, repositories.ErrContactNotFound) {
		return UserLookup{}, err
	}

	return UserLookup{User: models.ProfileOf(user), FriendshipStatus: status}, nil
}
