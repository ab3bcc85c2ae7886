// services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-booking/cache"
	"hotel-booking/models"
	"hotel-booking/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB    *gorm.DB
	Cache *cache.Cache
}

func NewUserService(db *gorm.DB, c *cache.Cache) *UserService {
	return &UserService{DB: db, Cache: c}
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("validation: email and password required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName: strings.TrimSpace(fullName),
		Email:    email,
		Password: string(hash),
	}
	if err := s.DB.Create(user).Error; err != nil {
		if utils.IsDuplicateEntry(err) {
			return nil, errors.New("email_already_registered")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.Cache.ClearKey(ctx, cache.KeyAdminUsers)
	return user, nil
}

// Authenticate checks email/password and returns the user on success.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid_credentials")
		}
		return nil, fmt.Errorf("db error checking user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid_credentials")
	}
	return &user, nil
}

// GetAll lists users for the admin screen, memoized under admin_users.
func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.Cache.Fetch(ctx, cache.KeyAdminUsers, 0, &users, func(ctx context.Context) (interface{}, error) {
		var fresh []models.User
		if err := s.DB.Order("created_at DESC").Find(&fresh).Error; err != nil {
			return nil, fmt.Errorf("failed to retrieve users: %w", err)
		}
		return fresh, nil
	})
	return users, err
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	result := s.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("user_not_found")
	}
	s.Cache.ClearKey(ctx, cache.KeyAdminUsers)
	s.Cache.ClearKey(ctx, cache.UserBookingsKey(id))
	return nil
}
