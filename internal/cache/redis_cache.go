package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oduwoleeyinojuoluwa44/Notification-Services-Suite/internal/config"
)

// RedisPreferenceCache implements PreferenceCache on Redis.
type RedisPreferenceCache struct {
	client *redis.Client
	prefix string
}

// NewRedisPreferenceCache connects to Redis and verifies the connection.
func NewRedisPreferenceCache(cfg config.RedisConfig, prefix string) (*RedisPreferenceCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPreferenceCache{
		client: client,
		prefix: prefix,
	}, nil
}

// BuildKey returns the cache key for a user's preference entry.
func (c *RedisPreferenceCache) BuildKey(userID string) string {
	return fmt.Sprintf("%s:preference:%s", c.prefix, userID)
}

func (c *RedisPreferenceCache) Get(ctx context.Context, userID string) (*PreferenceEntry, error) {
	data, err := c.client.Get(ctx, c.BuildKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var entry PreferenceEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &entry, nil
}

func (c *RedisPreferenceCache) Set(ctx context.Context, entry *PreferenceEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.BuildKey(entry.UserID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisPreferenceCache) Delete(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.BuildKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}

	return nil
}

// Ping verifies Redis connectivity.
func (c *RedisPreferenceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisPreferenceCache) Close() error {
	return c.client.Close()
}
