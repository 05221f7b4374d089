package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"invoicebook/internal/models"
	"invoicebook/internal/password"

	"gorm.io/gorm"
)

type UserRepository struct {
	db     *gorm.DB
	hasher password.Hasher
}

func NewUserRepository(db *gorm.DB, hasher password.Hasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, username, plain string, role models.UserRole) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || plain == "" {
		return nil, invalid("username and password are required")
	}
	if !role.Valid() {
		return nil, invalid(fmt.Sprintf("unknown role %q", role))
	}

	hash, err := r.hasher.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{Username: username, PasswordHash: hash, Role: role}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) ChangePassword(ctx context.Context, id uint, plain string) error {
	if plain == "" {
		return invalid("password is required")
	}
	hash, err := r.hasher.Hash(plain)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every user; digests are never serialized.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
