package repositories

import (
	"MediBook/cache"
	"MediBook/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	UserCacheExpiry = 24 * time.Hour
)

// UserRepository persists accounts.
type UserRepository interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	RoleIDByName(ctx context.Context, name string) (int64, error)
	UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error
	DeleteUserCache(ctx context.Context, email string) error
}

type userRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserRepository(db *gorm.DB, cache *cache.Cache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.userCacheKey(userID)
	var user models.User
	if found, err := r.cache.GetJSON(ctx, cacheKey, &user); err == nil && found {
		return &user, nil
	} else if err != nil {
		log.Printf("Failed to get user from cache: %v", err)
	}

	err := r.db.WithContext(ctx).
		Select("id, full_name, email, role_id, created_at").
		Preload("Role").
		First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, user, UserCacheExpiry); err != nil {
		log.Printf("Failed to set user in cache: %v", err)
	}
	return &user, nil
}

func (r *userRepository) RoleIDByName(ctx context.Context, name string) (int64, error) {
	var role models.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("unknown role %q", name)
		}
		return 0, fmt.Errorf("failed to look up role: %w", err)
	}
	return role.ID, nil
}

func (r *userRepository) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword).Error
	if err != nil {
		return fmt.Errorf("failed to update user password: %w", err)
	}
	return r.cache.Delete(ctx, r.userCacheKey(userID))
}

func (r *userRepository) DeleteUserCache(ctx context.Context, userID string) error {
	return r.cache.Delete(ctx, r.userCacheKey(userID))
}

func (r *userRepository) userCacheKey(id string) string {
	return fmt.Sprintf("user_cache:%s", id)
}
