package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"chitchat-backend/internal/models"
	"chitchat-backend/internal/repositories"
)

const defaultMessageType = "TEXT"

// MessageService appends and paginates room messages.
type MessageService struct {
	messages repositories.MessageRepository
	users    repositories.UserRepository
	guard    *AccessGuard
}

// NewMessageService constructs a MessageService.
func NewMessageService(messages repositories.MessageRepository, users repositories.UserRepository, guard *AccessGuard) *MessageService {
	return &MessageService{messages: messages, users: users, guard: guard}
}

// SendMessage persists a message for an active participant and returns it
// enriched with the sender's profile.
func (s *MessageService) SendMessage(ctx context.Context, senderID int, roomID int, content string, messageType string) (models.MessageView, error) {
	if strings.TrimSpace(content) == "" {
		return models.MessageView{}, fmt.Errorf("%w: message content is required", ErrValidation)
	}

	ok, err := s.guard.HasAccess(ctx, senderID, roomID)
	if err != nil {
		return models.MessageView{}, err
	}
	if !ok {
		return models.MessageView{}, fmt.Errorf("%w: user %d has no access to room %d", ErrUnauthorized, senderID, roomID)
	}

	if messageType == "" {
		messageType = defaultMessageType
	}

	msg, err := s.messages.CreateMessage(ctx, roomID, senderID, content, messageType)
	if err != nil {
		return models.MessageView{}, err
	}

	sender, err := s.users.GetUser(ctx, senderID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.MessageView{}, fmt.Errorf("%w: user %d", ErrNotFound, senderID)
	}
	if err != nil {
		return models.MessageView{}, err
	}

	profile := models.ProfileOf(sender)
	return models.MessageView{Message: msg, Sender: &profile}, nil
}

// GetRoomMessages returns one page of a room's active messages, newest first.
// Page metadata reflects the active-message count at query time. A message
// whose sender no longer exists keeps a nil sender instead of failing the
// page.
func (s *MessageService) GetRoomMessages(ctx context.Context, userID int, roomID int, page int, size int) (models.MessagePage, error) {
	if page < 0 || size <= 0 {
		return models.MessagePage{}, fmt.Errorf("%w: page must be >= 0 and size > 0", ErrValidation)
	}

	ok, err := s.guard.HasAccess(ctx, userID, roomID)
	if err != nil {
		return models.MessagePage{}, err
	}
	if !ok {
		return models.MessagePage{}, fmt.Errorf("%w: user %d has no access to room %d", ErrUnauthorized, userID, roomID)
	}

	ctx, span := otel.Tracer("chitchat-backend/services").Start(ctx, "messages.page")
	span.SetAttributes(attribute.Int("room.id", roomID), attribute.Int("page", page))
	defer span.End()

	total, err := s.messages.CountRoomMessages(ctx, roomID)
	if err != nil {
		return models.MessagePage{}, err
	}

	msgs, err := s.messages.ListRoomMessages(ctx, roomID, size, page*size)
	if err != nil {
		return models.MessagePage{}, err
	}

	senderIDs := make([]int, 0, len(msgs))
	seen := map[int]struct{}{}
	for _, m := range msgs {
		if _, ok := seen[m.SenderID]; !ok {
			seen[m.SenderID] = struct{}{}
			senderIDs = append(senderIDs, m.SenderID)
		}
	}
	senders, err := s.users.ListUsers(ctx, senderIDs)
	if err != nil {
		return models.MessagePage{}, err
	}
	profileByID := make(map[int]models.UserProfile, len(senders))
	for _, u := range senders {
		profileByID[u.ID] = models.ProfileOf(u)
	}

	views := make([]models.MessageView, 0, len(msgs))
	for _, m := range msgs {
		view := models.MessageView{Message: m}
		if profile, ok := profileByID[m.SenderID]; ok {
			p := profile
			view.Sender = &p
		}
		views = append(views, view)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}

	return models.MessagePage{
		Messages:      views,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}
