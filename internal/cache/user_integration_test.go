//go:build integration

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rosterhq/roster/internal/model"
)

// newCacheTestEnv connects to the test Redis instance.
func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()

	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()

	c, err := New(ctx, redisURL, Options{PoolSize: 4, MinIdleConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to Redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return ctx, c
}

func TestIntegrationUserCache_RoundTrip(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	now := time.Now().UTC().Truncate(time.Second)
	user := &model.User{
		ID:             fmt.Sprintf("cache-test-%d", now.UnixNano()),
		Email:          "cached@example.test",
		Name:           "Cached",
		HashedPassword: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	t.Cleanup(func() { _ = c.DeleteUser(ctx, user.ID) })

	if err := c.SetUser(ctx, user); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}

	got, err := c.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != user.Email || got.HashedPassword != user.HashedPassword {
		t.Errorf("cached user does not match stored user: %+v", got)
	}
}

func TestIntegrationUserCache_DeleteEvicts(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	now := time.Now().UTC()
	user := &model.User{
		ID:        fmt.Sprintf("cache-del-%d", now.UnixNano()),
		Email:     "evicted@example.test",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.SetUser(ctx, user); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
	if err := c.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := c.GetUser(ctx, user.ID); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestIntegrationUserCache_MissingKeyIsAMiss(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	if _, err := c.GetUser(ctx, "no-such-user"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}
