package domain

import (
	"time"
)

// User represents a user account with its notification preference.
type User struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	PushToken    *string         `json:"push_token,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
	Preference   *UserPreference `json:"preferences,omitempty"`
}

// UserPreference holds the per-user notification flags.
//
// A value served from the cache carries only the user id and the two
// flags; id and timestamps are zero and omitted from the JSON output.
type UserPreference struct {
	ID        string     `json:"id,omitempty"`
	UserID    string     `json:"user_id"`
	Email     bool       `json:"email"`
	Push      bool       `json:"push"`
	CreatedAt time.Time  `json:"created_at,omitzero"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PreferenceInput carries the notification flags of a request body.
// Omitted flags default to enabled.
type PreferenceInput struct {
	Email *bool `json:"email"`
	Push  *bool `json:"push"`
}

// EmailEnabled returns the email flag, defaulting to true.
func (p *PreferenceInput) EmailEnabled() bool {
	if p == nil || p.Email == nil {
		return true
	}
	return *p.Email
}

// PushEnabled returns the push flag, defaulting to true.
func (p *PreferenceInput) PushEnabled() bool {
	if p == nil || p.Push == nil {
		return true
	}
	return *p.Push
}

// CreateUserRequest is the body of POST /create-user.
type CreateUserRequest struct {
	Name        string           `json:"name" binding:"required"`
	Email       string           `json:"email" binding:"required,email"`
	Password    string           `json:"password" binding:"required,min=8"`
	PushToken   *string          `json:"push_token"`
	Preferences *PreferenceInput `json:"preferences" binding:"required"`
}

// UpdatePushTokenRequest is the body of PUT /update-push-token/:user_id.
// A nil token leaves the stored token untouched.
type UpdatePushTokenRequest struct {
	PushToken *string `json:"push_token"`
}

// VerifyPasswordRequest is the body of POST /verify-password.
type VerifyPasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest is the body of PUT /update-password/:user_id.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserListResponse wraps a page of users.
type UserListResponse struct {
	Users []User `json:"users"`
}

// HealthStatus reports reachability of the service dependencies.
type HealthStatus struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

// Healthy reports whether every dependency responded.
func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}
