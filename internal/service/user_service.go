package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"usercontacts/internal/auth"
	"usercontacts/internal/cache"
	apperrors "usercontacts/internal/errors"
	"usercontacts/internal/model"
	"usercontacts/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserPatch carries the fields of a partial user update; nil means unchanged.
type UserPatch struct {
	Username       *string
	Password       *string
	FirstName      *string
	LastName       *string
	Age            *int
	FavouriteColor *string
}

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, patch UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo     repository.UserRepository
	cache    *cache.Client
	validate *validator.Validate
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache, validate: validator.New()}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// preparePassword replaces the plaintext password on user with its hash.
func preparePassword(user *model.User) error {
	if user.Password == "" {
		return apperrors.NewValidationError("password", "Password cannot be empty")
	}
	hash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hash
	return nil
}

// CreateUser validates the user, hashes its plaintext password and persists it.
func (s *userService) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if err := validateStruct(s.validate, user); err != nil {
		return nil, err
	}
	if err := preparePassword(user); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, uniqueViolation("username")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUser returns the user with its contacts, served from cache when possible.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByIDWithContacts(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListWithContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateUser applies patch. A new password is hashed before it is stored.
func (s *userService) UpdateUser(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Age != nil {
		user.Age = patch.Age
	}
	if patch.FavouriteColor != nil {
		user.FavouriteColor = *patch.FavouriteColor
	}
	if err := validateStruct(s.validate, user); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		user.Password = *patch.Password
		if err := preparePassword(user); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, uniqueViolation("username")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return user, nil
}

// DeleteUser removes the user and, with it, every contact it owns.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(id))
	return nil
}
