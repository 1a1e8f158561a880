package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"chitchat-backend/internal/models"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrNotPending      = errors.New("contact is not pending")
)

// ContactRepository drives persistence of the directed friend edges.
type ContactRepository interface {
	CreateContact(ctx context.Context, userID int, friendID int, status models.ContactStatus) (models.UserContact, error)
	GetContact(ctx context.Context, contactID int) (models.UserContact, error)
	FindContact(ctx context.Context, userID int, friendID int) (models.UserContact, error)
	ListFriends(ctx context.Context, userID int) ([]models.UserContact, error)
	ListPendingRequests(ctx context.Context, userID int) ([]models.UserContact, error)
	AcceptRequest(ctx context.Context, requestID int, recipientID int, senderID int) error
	DeleteRequest(ctx context.Context, requestID int) error
	DeleteContactPair(ctx context.Context, userID int, friendID int) error
}

// ContactRepo is a sqlx implementation of ContactRepository.
type ContactRepo struct {
	db *sqlx.DB
}

// NewContactRepo constructs a ContactRepo.
func NewContactRepo(db *sqlx.DB) *ContactRepo {
	return &ContactRepo{db: db}
}

// CreateContact inserts one directed edge.
func (r *ContactRepo) CreateContact(ctx context.Context, userID int, friendID int, status models.ContactStatus) (models.UserContact, error) {
	var contact models.UserContact
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO user_contacts (user_id, friend_id, status) VALUES ($1, $2, $3)
         RETURNING id, user_id, friend_id, status, is_active, created_at`,
		userID, friendID, status).
		Scan(&contact.ID, &contact.UserID, &contact.FriendID, &contact.Status, &contact.IsActive, &contact.CreatedAt)
	return contact, err
}

// GetContact fetches one edge by id.
func (r *ContactRepo) GetContact(ctx context.Context, contactID int) (models.UserContact, error) {
	var contact models.UserContact
	err := r.db.GetContext(ctx, &contact,
		`SELECT id, user_id, friend_id, status, is_active, created_at FROM user_contacts WHERE id=$1`, contactID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserContact{}, ErrContactNotFound
	}
	return contact, err
}

// FindContact fetches the edge for an ordered (user, friend) pair regardless
// of status.
func (r *ContactRepo) FindContact(ctx context.Context, userID int, friendID int) (models.UserContact, error) {
	var contact models.UserContact
	err := r.db.GetContext(ctx, &contact,
		`SELECT id, user_id, friend_id, status, is_active, created_at
         FROM user_contacts WHERE user_id=$1 AND friend_id=$2`, userID, friendID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserContact{}, ErrContactNotFound
	}
	return contact, err
}

// ListFriends returns the accepted outgoing edges of a user.
func (r *ContactRepo) ListFriends(ctx context.Context, userID int) ([]models.UserContact, error) {
	var contacts []models.UserContact
	err := r.db.SelectContext(ctx, &contacts,
		`SELECT id, user_id, friend_id, status, is_active, created_at
         FROM user_contacts WHERE user_id=$1 AND status=$2 AND is_active
         ORDER BY created_at ASC`, userID, models.ContactAccepted)
	return contacts, err
}

// ListPendingRequests returns pending edges addressed to the user.
func (r *ContactRepo) ListPendingRequests(ctx context.Context, userID int) ([]models.UserContact, error) {
	var contacts []models.UserContact
	err := r.db.SelectContext(ctx, &contacts,
		`SELECT id, user_id, friend_id, status, is_active, created_at
         FROM user_contacts WHERE friend_id=$1 AND status=$2 AND is_active
         ORDER BY created_at ASC`, userID, models.ContactPending)
	return contacts, err
}

// AcceptRequest flips the request to ACCEPTED and writes the reciprocal edge
// in one transaction. The status check is part of the UPDATE itself, so a
// concurrent accept or reject of the same request cannot both apply.
func (r *ContactRepo) AcceptRequest(ctx context.Context, requestID int, recipientID int, senderID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE user_contacts SET status=$1 WHERE id=$2 AND status=$3`,
		models.ContactAccepted, requestID, models.ContactPending)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		err = ErrNotPending
		return err
	}

	// The reverse slot may already hold a pending edge (mutual requests are
	// legal), so the reciprocal write upserts instead of inserting.
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_contacts (user_id, friend_id, status) VALUES ($1, $2, $3)
         ON CONFLICT (user_id, friend_id) DO UPDATE SET status=EXCLUDED.status`,
		recipientID, senderID, models.ContactAccepted); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteRequest removes a pending request outright. Rejection leaves no row
// behind, so the sender may request again later.
func (r *ContactRepo) DeleteRequest(ctx context.Context, requestID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_contacts WHERE id=$1 AND status=$2`, requestID, models.ContactPending)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotPending
	}
	return nil
}

// DeleteContactPair removes both directions of a friendship. Absent rows are
// ignored, which keeps the call idempotent.
func (r *ContactRepo) DeleteContactPair(ctx context.Context, userID int, friendID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_contacts
         WHERE (user_id=$1 AND friend_id=$2) OR (user_id=$2 AND friend_id=$1)`, userID, friendID)
	return err
}
