package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nstepanov-hw/shop-api/internal/models"
)

type UserStore struct {
	DB *gorm.DB
}

// Create stores a new user, rejecting a taken username with exact
// case-sensitive matching.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		err := tx.Where("username = ?", user.Username).First(&existing).Error
		if err == nil {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicateKey)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(user).Error
	})
}

func (s *UserStore) GetByID(ctx context.Context, uid uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", uid, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// SetRole updates the role of an existing user.
func (s *UserStore) SetRole(ctx context.Context, uid uint, role string) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", uid, ErrNotFound)
	}
	return nil
}
