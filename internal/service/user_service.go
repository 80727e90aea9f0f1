package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/audit"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/cache"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/domain"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/repository"
	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/pkg/log"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPreferenceNotFound = errors.New("user preference not found")
	ErrInvalidCredentials = errors.New("invalid password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// userServiceImpl implements UserService.
type userServiceImpl struct {
	repo     repository.UserRepository
	cache    cache.PreferenceCache
	cacheTTL time.Duration
}

// NewUserService creates a new user service. The repository and cache are
// constructed once at startup and passed in explicitly.
func NewUserService(repo repository.UserRepository, prefCache cache.PreferenceCache, cacheTTL time.Duration) UserService {
	return &userServiceImpl{
		repo:     repo,
		cache:    prefCache,
		cacheTTL: cacheTTL,
	}
}

// CreateUser creates a user together with its notification preference and
// leaves the preference cache populated. The only path with that guarantee.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	l := log.Ctx(ctx)

	_, err := s.repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailExists
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		l.Error().Err(err).Msg("failed to check existing email")
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		PushToken:    req.PushToken,
		Preference: &domain.UserPreference{
			Email: req.Preferences.EmailEnabled(),
			Push:  req.Preferences.PushEnabled(),
		},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		l.Error().Err(err).Msg("failed to create user")
		return nil, err
	}

	s.cachePreference(ctx, user.Preference)

	audit.Log(ctx, audit.ActionCreateUser, user.ID, "user created")

	return user, nil
}

// GetUser retrieves a user by ID straight from the store.
func (s *userServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get user")
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email straight from the store.
func (s *userServiceImpl) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return user, nil
}

// GetPreference is the read-through path: a cache hit is served without a
// store round trip; a miss falls back to the store and repopulates the
// cache before returning. Cache infrastructure errors degrade to a store
// read instead of failing the request.
func (s *userServiceImpl) GetPreference(ctx context.Context, userID string) (*domain.UserPreference, error) {
	l := log.Ctx(ctx)

	entry, err := s.cache.Get(ctx, userID)
	if err == nil {
		l.Debug().Str(log.FieldUserID, userID).Msg("preference served from cache")
		return &domain.UserPreference{
			UserID: entry.UserID,
			Email:  entry.Email,
			Push:   entry.Push,
		}, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		l.Warn().Err(err).Str(log.FieldUserID, userID).Msg("preference cache lookup failed, falling back to store")
	}

	pref, err := s.repo.GetPreferenceByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return nil, ErrPreferenceNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get preference")
		return nil, err
	}

	s.cachePreference(ctx, pref)
	return pref, nil
}

// UpdatePreference overwrites both flags in the store, then invalidates
// and repopulates the cache entry. Delete-then-set, never set-in-place,
// so no stale field survives an update.
func (s *userServiceImpl) UpdatePreference(ctx context.Context, userID string, email, push bool) (*domain.UserPreference, error) {
	l := log.Ctx(ctx)

	pref, err := s.repo.UpdatePreference(ctx, userID, email, push)
	if err != nil {
		if errors.Is(err, repository.ErrPreferenceNotFound) {
			return nil, ErrPreferenceNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to update preference")
		return nil, err
	}

	if err := s.cache.Delete(ctx, userID); err != nil {
		l.Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to invalidate preference cache")
	}
	s.cachePreference(ctx, pref)

	audit.Log(ctx, audit.ActionUpdatePreferences, userID, "preferences updated")

	return pref, nil
}

// UpdatePushToken sets the push token for a user. A nil token is a no-op,
// not a clear. The cache is untouched; the token is not cached.
func (s *userServiceImpl) UpdatePushToken(ctx context.Context, userID string, token *string) (*domain.User, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get user for push token update")
		return nil, err
	}

	if token == nil {
		return user, nil
	}

	if err := s.repo.UpdatePushToken(ctx, userID, *token); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to update push token")
		return nil, err
	}

	user, err = s.repo.GetByID(ctx, userID)
	if err != nil {
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to reload user after push token update")
		return nil, err
	}

	audit.Log(ctx, audit.ActionUpdatePushToken, userID, "push token updated")

	return user, nil
}

// VerifyPassword checks credentials against the stored hash. Stand-alone
// check, no token issuance.
func (s *userServiceImpl) VerifyPassword(ctx context.Context, email, password string) (*domain.User, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Msg("failed to get user for password verification")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		audit.LogWithDetail(ctx, audit.ActionVerifyPasswordFailed, user.ID, email, "password verification failed")
		return nil, ErrInvalidCredentials
	}

	audit.Log(ctx, audit.ActionVerifyPassword, user.ID, "password verified")

	return user, nil
}

// UpdatePassword replaces the stored hash after verifying the current
// password.
func (s *userServiceImpl) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*domain.User, error) {
	l := log.Ctx(ctx)

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get user for password update")
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return nil, ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		l.Error().Err(err).Msg("failed to hash new password")
		return nil, err
	}

	if err := s.repo.UpdatePasswordHash(ctx, userID, string(hashedPassword)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to update password")
		return nil, err
	}
	user.PasswordHash = string(hashedPassword)

	audit.Log(ctx, audit.ActionUpdatePassword, userID, "password updated")

	return user, nil
}

// ListUsers returns a page of users in store default order and the total
// row count. The two queries are separate; no snapshot consistency is
// guaranteed between them.
func (s *userServiceImpl) ListUsers(ctx context.Context, page, limit int) ([]domain.User, int64, error) {
	l := log.Ctx(ctx)

	offset := (page - 1) * limit
	users, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		l.Error().Err(err).Msg("failed to list users")
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to count users")
		return nil, 0, err
	}

	return users, total, nil
}

// DeleteUser removes the user, its preference row (cascade) and its cache
// entry.
func (s *userServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	l := log.Ctx(ctx)

	if err := s.repo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to delete user")
		return err
	}

	if err := s.cache.Delete(ctx, userID); err != nil {
		l.Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to invalidate preference cache after delete")
	}

	audit.Log(ctx, audit.ActionDeleteUser, userID, "user deleted")

	return nil
}

// Health pings both dependencies. Native error text stays in the log.
func (s *userServiceImpl) Health(ctx context.Context) domain.HealthStatus {
	l := log.Ctx(ctx)

	status := domain.HealthStatus{
		Status:   "healthy",
		Service:  "user-service",
		Database: "connected",
		Redis:    "connected",
	}

	if err := s.repo.Ping(ctx); err != nil {
		l.Error().Err(err).Msg("database health check failed")
		status.Database = "unreachable"
		status.Status = "unhealthy"
	}

	if err := s.cache.Ping(ctx); err != nil {
		l.Error().Err(err).Msg("redis health check failed")
		status.Redis = "unreachable"
		status.Status = "unhealthy"
	}

	return status
}

// cachePreference writes the minimal preference projection with the
// configured TTL. Failures are logged, never propagated; the store stays
// authoritative.
func (s *userServiceImpl) cachePreference(ctx context.Context, pref *domain.UserPreference) {
	entry := &cache.PreferenceEntry{
		UserID: pref.UserID,
		Email:  pref.Email,
		Push:   pref.Push,
	}
	if err := s.cache.Set(ctx, entry, s.cacheTTL); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldUserID, pref.UserID).Msg("failed to populate preference cache")
	}
}
