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

// FriendsService drives the friend-request state machine. A pending request
// is one directed edge; acceptance adds the reciprocal edge.
type FriendsService struct {
	contacts repositories.ContactRepository
	users    repositories.UserRepository
}

// NewFriendsService constructs a FriendsService.
func NewFriendsService(contacts repositories.ContactRepository, users repositories.UserRepository) *FriendsService {
	return &FriendsService{contacts: contacts, users: users}
}

// SendFriendRequest creates a PENDING edge toward the user with the given
// email. Only the sender-to-recipient direction is checked for duplicates; a
// reverse pending request does not block the call.
func (s *FriendsService) SendFriendRequest(ctx context.Context, senderID int, recipientEmail string) error {
	if strings.TrimSpace(recipientEmail) == "" {
		return fmt.Errorf("%w: recipient email is required", ErrValidation)
	}

	recipient, err := s.users.GetUserByEmail(ctx, recipientEmail)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("%w: no user with email %s", ErrNotFound, recipientEmail)
	}
	if err != nil {
		return err
	}

	_, err = s.contacts.FindContact(ctx, senderID, recipient.ID)
	if err == nil {
		return fmt.Errorf("%w: request already exists or users are already friends", ErrConflict)
	}
	if !errors.Is(err, repositories.ErrContactNotFound) {
		return err
	}

	if _, err := s.contacts.CreateContact(ctx, senderID, recipient.ID, models.ContactPending); err != nil {
		return err
	}
	log.Printf("friend request sent from=%d to=%d", senderID, recipient.ID)
	return nil
}

// GetFriendRequests returns the pending requests addressed to the user, each
// enriched with the sender's profile. Requests from deleted accounts are
// skipped.
func (s *FriendsService) GetFriendRequests(ctx context.Context, userID int) ([]models.FriendRequestView, error) {
	pending, err := s.contacts.ListPendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]int, 0, len(pending))
	for _, req := range pending {
		senderIDs = append(senderIDs, req.UserID)
	}
	senders, err := s.users.ListUsers(ctx, senderIDs)
	if err != nil {
		return nil, err
	}
	senderByID := make(map[int]models.User, len(senders))
	for _, u := range senders {
		senderByID[u.ID] = u
	}

	views := make([]models.FriendRequestView, 0, len(pending))
	for _, req := range pending {
		sender, ok := senderByID[req.UserID]
		if !ok {
			continue
		}
		views = append(views, models.FriendRequestView{
			ID:         req.ID,
			SenderID:   req.UserID,
			ReceiverID: req.FriendID,
			Status:     req.Status,
			CreatedAt:  req.CreatedAt,
			Sender:     models.ProfileOf(sender),
		})
	}
	return views, nil
}

// AcceptFriendRequest transitions a pending request to ACCEPTED and writes
// the reciprocal edge. Only the addressee may accept, and only while the
// request is still pending; the repository re-verifies the status atomically
// with the transition.
func (s *FriendsService) AcceptFriendRequest(ctx context.Context, acceptorID int, requestID int) error {
	request, err := s.contacts.GetContact(ctx, requestID)
	if errors.Is(err, repositories.ErrContactNotFound) {
		return fmt.Errorf("%w: friend request %d", ErrNotFound, requestID)
	}
	if err != nil {
		return err
	}

	if request.FriendID != acceptorID {
		return fmt.Errorf("%w: only the addressee may accept a friend request", ErrForbidden)
	}
	if request.Status != models.ContactPending {
		return fmt.Errorf("%w: friend request %d is not pending", ErrInvalidState, requestID)
	}

	err = s.contacts.AcceptRequest(ctx, requestID, acceptorID, request.UserID)
	if errors.Is(err, repositories.ErrNotPending) {
		return fmt.Errorf("%w: friend request %d is not pending", ErrInvalidState, requestID)
	}
	if err != nil {
		return err
	}
	log.Printf("friend request %d accepted by %d", requestID, acceptorID)
	return nil
}

// RejectFriendRequest deletes a pending request. The sender may request again
// afterwards since no edge remains.
func (s *FriendsService) RejectFriendRequest(ctx context.Context, rejectorID int, requestID int) error {
	request, err := s.contacts.GetContact(ctx, requestID)
	if errors.Is(err, repositories.ErrContactNotFound) {
		return fmt.Errorf("%w: friend request %d", ErrNotFound, requestID)
	}
	if err != nil {
		return err
	}

	if request.FriendID != rejectorID {
		return fmt.Errorf("%w: only the addressee may reject a friend request", ErrForbidden)
	}
	if request.Status != models.ContactPending {
		return fmt.Errorf("%w: friend request %d is not pending", ErrInvalidState, requestID)
	}

	err = s.contacts.DeleteRequest(ctx, requestID)
	if errors.Is(err, repositories.ErrNotPending) {
		return fmt.Errorf("%w: friend request %d is not pending", ErrInvalidState, requestID)
	}
	if err != nil {
		return err
	}
	log.Printf("friend request %d rejected by %d", requestID, rejectorID)
	return nil
}

// RemoveFriend deletes both directions of a friendship. Absent edges are
// silently ignored.
func (s *FriendsService) RemoveFriend(ctx context.Context, userID int, friendID int) error {
	if err := s.contacts.DeleteContactPair(ctx, userID, friendID); err != nil {
		return err
	}
	log.Printf("friendship removed between %d and %d", userID, friendID)
	return nil
}

// GetFriends returns the profiles of every accepted friend of the user.
func (s *FriendsService) GetFriends(ctx context.Context, userID int) ([]models.UserProfile, error) {
	contacts, err := s.contacts.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	friendIDs := make([]int, 0, len(contacts))
	for _, c := range contacts {
		friendIDs = append(friendIDs, c.FriendID)
	}
	users, err := s.users.ListUsers(ctx, friendIDs)
	if err != nil {
		return nil, err
	}
	userByID := make(map[int]models.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	profiles := make([]models.UserProfile, 0, len(contacts))
	for _, c := range contacts {
		if u, ok := userByID[c.FriendID]; ok {
			profiles = append(profiles, models.ProfileOf(u))
		}
	}
	return profiles, nil
}
