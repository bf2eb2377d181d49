package repositories

import (
	"MediBook/cache"
	"MediBook/database"
	"MediBook/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ProfileCacheExpiry = time.Hour
)

// ProfileRepository persists the 1:1 profile attached to every account.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	CountPatients(ctx context.Context) (int64, error)
}

type profileRepository struct {
	cache *cache.Cache
}

func NewProfileRepository(cache *cache.Cache) ProfileRepository {
	return &profileRepository{cache: cache}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	err := database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "medical_history"}),
	}).Create(profile).Error
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if err := r.cache.Delete(ctx, r.profileCacheKey(profile.ID)); err != nil {
		log.Printf("Failed to delete profile cache: %v", err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.profileCacheKey(id)
	var profile models.Profile
	if found, err := r.cache.GetJSON(ctx, cacheKey, &profile); err == nil && found {
		return &profile, nil
	} else if err != nil {
		log.Printf("Failed to get profile from cache: %v", err)
	}

	err := database.DB.WithContext(ctx).First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, profile, ProfileCacheExpiry); err != nil {
		log.Printf("Failed to set profile in cache: %v", err)
	}
	return &profile, nil
}

// CountPatients counts profiles belonging to accounts with the patient role.
func (r *profileRepository) CountPatients(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", models.RolePatient).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *profileRepository) profileCacheKey(id string) string {
	return fmt.Sprintf("profile_cache:%s", id)
}
