package database

import (
	"context"

	"github.com/pageza/recipes/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserStore persists registered accounts through gorm
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

// FindByEmail returns the user registered under email or ErrRecordNotFound
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	return &user, nil
}

// Exists reports whether an account is registered under email
func (s *UserStore) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check user")
	}
	return count > 0, nil
}
