package service

import (
	"context"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
)

// UserService defines the data-access layer for users and their
// notification preferences.
type UserService interface {
	CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error)
	UpdatePreference(ctx context.Context, userID string, email, push bool) (*domain.UserPreference, error)
	UpdatePushToken(ctx context.Context, userID string, token *string) (*domain.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error)
	DeleteUser(ctx context.Context, userID string) error
	Health(ctx context.Context) domain.HealthStatus
}
