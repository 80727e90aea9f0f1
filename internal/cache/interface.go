package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// PreferenceEntry is the minimal preference projection held in the cache:
// one entry per user, keyed by the user id.
type PreferenceEntry struct {
	UserID string `json:"user_id"`
	Email  bool   `json:"email"`
	Push   bool   `json:"push"`
}

// PreferenceCache caches the notification preference of a user.
type PreferenceCache interface {
	Get(ctx context.Context, userID string) (*PreferenceEntry, error)
	Set(ctx context.Context, entry *PreferenceEntry, ttl time.Duration) error
	Delete(ctx context.Context, userID string) error
	Ping(ctx context.Context) error
	Close() error
}
