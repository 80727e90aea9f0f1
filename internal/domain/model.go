package domain

import (
	"time"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           string               `gorm:"type:varchar(36);primaryKey"`
	Name         string               `gorm:"type:varchar(255);not null"`
	Email        string               `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string               `gorm:"type:varchar(255);not null"`
	PushToken    *string              `gorm:"type:varchar(512)"`
	CreatedAt    time.Time            `gorm:"autoCreateTime"`
	UpdatedAt    *time.Time           `gorm:"autoUpdateTime"`
	Preference   *UserPreferenceModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// UserPreferenceModel is the GORM model for the user_preferences table.
// The unique index on UserID enforces the one-to-one relationship.
type UserPreferenceModel struct {
	ID        string     `gorm:"type:varchar(36);primaryKey"`
	UserID    string     `gorm:"type:varchar(36);uniqueIndex;not null"`
	Email     bool       `gorm:"not null"`
	Push      bool       `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for UserPreferenceModel.
func (UserPreferenceModel) TableName() string {
	return "user_preferences"
}

// ToDomain converts UserModel to a domain User.
func (m *UserModel) ToDomain() *User {
	u := &User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		PushToken:    m.PushToken,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Preference != nil {
		u.Preference = m.Preference.ToDomain()
	}
	return u
}

// UserToModel converts a domain User to UserModel.
func UserToModel(u *User) *UserModel {
	m := &UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		PushToken:    u.PushToken,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Preference != nil {
		m.Preference = PreferenceToModel(u.Preference)
	}
	return m
}

// ToDomain converts UserPreferenceModel to a domain UserPreference.
func (m *UserPreferenceModel) ToDomain() *UserPreference {
	return &UserPreference{
		ID:        m.ID,
		UserID:    m.UserID,
		Email:     m.Email,
		Push:      m.Push,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PreferenceToModel converts a domain UserPreference to UserPreferenceModel.
func PreferenceToModel(p *UserPreference) *UserPreferenceModel {
	return &UserPreferenceModel{
		ID:        p.ID,
		UserID:    p.UserID,
		Email:     p.Email,
		Push:      p.Push,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
