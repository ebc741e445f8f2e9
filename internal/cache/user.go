package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rosterhq/roster/internal/model"
)

// Cache key prefix and TTL for user records.
const (
	userKeyPrefix = "user:"

	// DefaultUserTTL is the TTL for cached user data.
	DefaultUserTTL = 15 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// userKey builds the cache key for a user ID.
func userKey(id string) string {
	return userKeyPrefix + id
}

// encodeUser serializes a user for cache storage.
func encodeUser(user *model.User) ([]byte, error) {
	payload := struct {
		*model.User
		HashedPassword string `json:"hashed_password"`
	}{User: user, HashedPassword: user.HashedPassword}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode cached user: %w", err)
	}
	return data, nil
}

// decodeUser deserializes a cached user payload.
func decodeUser(data []byte) (*model.User, error) {
	var payload struct {
		model.User
		HashedPassword string `json:"hashed_password"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}

	user := payload.User
	user.HashedPassword = payload.HashedPassword
	return &user, nil
}

// GetUser retrieves a user from cache by ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetUser(ctx context.Context, id string) (*model.User, error) {
	data, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return decodeUser(data)
}

// SetUser stores a user in cache with the default TTL.
func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	data, err := encodeUser(user)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, userKey(user.ID), data, DefaultUserTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// DeleteUser removes a user from cache.
func (c *Cache) DeleteUser(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, userKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
