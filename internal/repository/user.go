// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"playto/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetOrCreateByUsername returns the user with the given username,
	// creating it if absent. Used by the guest identity resolver; safe
	// against concurrent creation of the same username.
	GetOrCreateByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetOrCreateByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{Username: username}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID != 0 {
		return &user, nil
	}
	// Conflict path: the row already existed, fetch it.
	var existing models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}
