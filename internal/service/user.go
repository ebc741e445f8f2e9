// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rosterhq/roster/internal/auth"
	"github.com/rosterhq/roster/internal/metrics"
	"github.com/rosterhq/roster/internal/model"
	"github.com/rosterhq/roster/internal/repository"
)

// Service errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrMissingID    = errors.New("user ID is required")
)

// UserRepository is the storage surface the user service depends on.
// *repository.Repository satisfies it; tests substitute an in-memory fake.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
}

// UserCache is the optional read-through cache for user lookups.
// Invalidation stays off this interface until a mutation endpoint
// needs it.
type UserCache interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
}

// Pagination bounds applied when the caller does not set them.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// UserService handles user business logic.
type UserService struct {
	repo         UserRepository
	cache        UserCache
	metrics      metrics.Recorder
	defaultLimit int
	maxLimit     int
}

// NewUserService creates a new UserService.
// cache may be nil when no Redis instance is configured.
func NewUserService(repo UserRepository, cache UserCache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:         repo,
		cache:        cache,
		metrics:      recorder,
		defaultLimit: DefaultListLimit,
		maxLimit:     MaxListLimit,
	}
}

// SetPageLimits overrides the default pagination bounds.
func (s *UserService) SetPageLimits(defaultLimit, maxLimit int) {
	if defaultLimit > 0 {
		s.defaultLimit = defaultLimit
	}
	if maxLimit > 0 {
		s.maxLimit = maxLimit
	}
}

// CreateUserInput defines input for creating a user.
// Field-level format validation happens at the DTO boundary;
// the service normalizes and persists.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
}

// CreateUser registers a new user with a generated ID and hashed password.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:             ulid.Make().String(),
		Email:          normalizeEmail(input.Email),
		Name:           strings.TrimSpace(input.Name),
		HashedPassword: hashed,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	start := time.Now()
	err = s.repo.CreateUser(ctx, user)
	s.metrics.ObserveQueryDuration(time.Since(start))

	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.metrics.IncUserCreated()

	// Best effort: a failed cache write only costs a later miss.
	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// GetUser returns the user with the given ID, consulting the cache first.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrMissingID
	}

	if s.cache != nil {
		if user, err := s.cache.GetUser(ctx, id); err == nil {
			s.metrics.IncUserCacheHit()
			s.metrics.IncUserFetched()
			return user, nil
		}
		s.metrics.IncUserCacheMiss()
	}

	start := time.Now()
	user, err := s.repo.GetUserByID(ctx, id)
	s.metrics.ObserveQueryDuration(time.Since(start))

	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.metrics.IncUserFetched()

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// ListUsersInput defines pagination input for listing users.
type ListUsersInput struct {
	Offset int
	Limit  int
}

// ListUsersResult carries a page of users plus pagination info.
type ListUsersResult struct {
	Users  []*model.User
	Total  int64
	Offset int
	Limit  int
}

// ListUsers returns users in creation order with bounded offset/limit.
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error) {
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	limit := input.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	start := time.Now()
	users, err := s.repo.ListUsers(ctx, offset, limit)
	s.metrics.ObserveQueryDuration(time.Since(start))
	if err != nil {
		return nil, err
	}

	total, err := s.repo.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.IncUsersListed()

	return &ListUsersResult{
		Users:  users,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

// normalizeEmail lowercases and trims an email address.
// Uniqueness in storage is case-sensitive, so normalize before writing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
