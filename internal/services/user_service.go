package services

import (
	"context"
	"errors"
	"fmt"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const userPrefix = "user"

// UserService manages admin accounts. Profile lookups go through the user cache.
type UserService struct {
	db     *gorm.DB
	caches *cache.Registry
}

func NewUserService(db *gorm.DB, caches *cache.Registry) *UserService {
	return &UserService{db: db, caches: caches}
}

// EnsureAdmin creates the admin account if no user with username exists.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("%w: admin username and password are required", ErrInvalidInput)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	u := models.User{ID: uuid.NewString(), Username: username, PasswordHash: hash}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		return false, dbError(err)
	}
	return true, nil
}

// Authenticate checks username and password against the stored hash.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	key := cache.Key(userPrefix, "id", id)
	return cache.GetOrSetAs(ctx, s.caches.User, key, func(ctx context.Context) (*models.User, error) {
		var u models.User
		if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
			return nil, dbError(err)
		}
		return &u, nil
	}, cache.UseDefaultTTL)
}
