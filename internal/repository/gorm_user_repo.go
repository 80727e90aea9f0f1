package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create inserts the user row and its preference row in a single
// transaction, so a failed preference insert never leaves an orphaned
// user behind.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New().String()
	if user.Preference == nil {
		user.Preference = &domain.UserPreference{Email: true, Push: true}
	}
	user.Preference.ID = uuid.New().String()
	user.Preference.UserID = user.ID

	userModel := domain.UserToModel(user)
	prefModel := userModel.Preference
	userModel.Preference = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userModel).Error; err != nil {
			return err
		}
		return tx.Create(prefModel).Error
	})
	if err != nil {
		return r.translateError(err)
	}

	// Carry generated timestamps back to the domain object.
	user.CreatedAt = userModel.CreatedAt
	user.UpdatedAt = userModel.UpdatedAt
	user.Preference.CreatedAt = prefModel.CreatedAt
	user.Preference.UpdatedAt = prefModel.UpdatedAt
	return nil
}

// GetByID retrieves a user by ID with its preference preloaded.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).Preload("Preference").First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetByEmail retrieves a user by email with its preference preloaded.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model domain.UserModel
	result := r.db.WithContext(ctx).Preload("Preference").First(&model, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// GetPreferenceByUserID retrieves the preference row for a user.
func (r *GormUserRepository) GetPreferenceByUserID(ctx context.Context, userID string) (*domain.UserPreference, error) {
	var model domain.UserPreferenceModel
	result := r.db.WithContext(ctx).First(&model, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPreferenceNotFound
		}
		return nil, result.Error
	}
	return model.ToDomain(), nil
}

// UpdatePreference overwrites both notification flags and returns the
// updated row.
func (r *GormUserRepository) UpdatePreference(ctx context.Context, userID string, email, push bool) (*domain.UserPreference, error) {
	result := r.db.WithContext(ctx).Model(&domain.UserPreferenceModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"email": email,
			"push":  push,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrPreferenceNotFound
	}

	return r.GetPreferenceByUserID(ctx, userID)
}

// UpdatePushToken sets the push token for a user.
func (r *GormUserRepository) UpdatePushToken(ctx context.Context, userID, token string) error {
	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", userID).
		Update("push_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePasswordHash stores a new password hash for a user.
func (r *GormUserRepository) UpdatePasswordHash(ctx context.Context, userID, hash string) error {
	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// List returns a page of users in store default order, preferences
// preloaded.
func (r *GormUserRepository) List(ctx context.Context, offset, limit int) ([]domain.User, error) {
	var models []domain.UserModel
	result := r.db.WithContext(ctx).Preload("Preference").
		Offset(offset).Limit(limit).Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].ToDomain())
	}
	return users, nil
}

// Count returns the total number of users.
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).Count(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

// Delete removes a user. The preference row is removed by the cascade
// constraint; the extra delete covers sqlite setups without enforced
// foreign keys.
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model domain.UserModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Delete(&domain.UserPreferenceModel{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.UserModel{}, "id = ?", id).Error
	})
}

// Ping verifies database connectivity through the connection pool.
func (r *GormUserRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// translateError converts driver-specific errors to domain errors.
// Postgres and MySQL drivers expose typed errors, so unique violations
// are matched with errors.As; the sqlite driver only surfaces the
// violation as message text. The email check keeps a duplicate on some
// other unique index (e.g. user_preferences.user_id) from masquerading
// as a duplicate email.
func (r *GormUserRepository) translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgUniqueViolation && strings.Contains(pgErr.ConstraintName, "email") {
			return ErrEmailExists
		}
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if myErr.Number == mysqlDuplicateEntry && strings.Contains(myErr.Message, "email") {
			return ErrEmailExists
		}
		return err
	}

	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") && strings.Contains(errStr, "email") {
		return ErrEmailExists
	}
	return err
}
