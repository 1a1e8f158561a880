package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"chitchat-backend/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository reads identity records. The users table is owned by the
// auth subsystem; this service never writes to it.
type UserRepository interface {
	GetUser(ctx context.Context, userID int) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, ids []int) ([]models.User, error)
	SearchUsers(ctx context.Context, query string, excludeID int, limit int) ([]models.User, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetUser fetches a single user by id.
func (r *UserRepo) GetUser(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, display_name, created_at FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUserByEmail fetches a single user by email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, email, display_name, created_at FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ListUsers fetches multiple users in one query. Ids with no matching row are
// silently absent from the result.
func (r *UserRepo) ListUsers(ctx context.Context, ids []int) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, email, display_name, created_at FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var users []models.User
	err = r.db.SelectContext(ctx, &users, r.db.Rebind(query), args...)
	return users, err
}

// SearchUsers matches email or display name by substring, excluding the
// caller.
func (r *UserRepo) SearchUsers(ctx context.Context, query string, excludeID int, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT id, email, display_name, created_at FROM users
         WHERE id <> $1 AND (email ILIKE '%' || $2 || '%' OR display_name ILIKE '%' || $2 || '%')
         ORDER BY display_name ASC LIMIT $3`,
		excludeID, query, limit)
	return users, err
}
