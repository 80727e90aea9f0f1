package repository

import (
	"context"
	"errors"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPreferenceNotFound = errors.New("user preference not found")
	ErrEmailExists        = errors.New("email already exists")
)

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	// Create inserts the user and its preference in one transaction.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error)
	// UpdatePreference overwrites both notification flags.
	UpdatePreference(ctx context.Context, userID string, email, push bool) (*domain.UserPreference, error)
	UpdatePushToken(ctx context.Context, userID, token string) error
	UpdatePasswordHash(ctx context.Context, userID, hash string) error
	List(ctx context.Context, offset, limit int) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	// Delete removes the user; the preference row cascades.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
