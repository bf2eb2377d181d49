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
	DoctorCacheExpiry = time.Hour
)

// DoctorRepository persists doctor profiles and schedules.
type DoctorRepository interface {
	UpsertSchedule(ctx context.Context, profile *models.Profile, doctor *models.DoctorProfile) error
	GetByID(ctx context.Context, id string) (*models.DoctorProfile, error)
	ListAll(ctx context.Context, excludeID string) ([]models.DoctorProfile, error)
	CountAll(ctx context.Context) (int64, error)
}

type doctorRepository struct {
	cache *cache.Cache
}

func NewDoctorRepository(cache *cache.Cache) DoctorRepository {
	return &doctorRepository{cache: cache}
}

// UpsertSchedule writes the doctor's profile row and schedule in one
// transaction so the doctor_profiles foreign key cannot dangle.
func (r *doctorRepository) UpsertSchedule(ctx context.Context, profile *models.Profile, doctor *models.DoctorProfile) error {
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name"}),
		}).Create(profile).Error; err != nil {
			return fmt.Errorf("failed to upsert profile: %w", err)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"specialization", "consultation_fee", "available_days", "start_time", "end_time",
			}),
		}).Create(doctor).Error; err != nil {
			return fmt.Errorf("failed to upsert doctor profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, r.doctorCacheKey(doctor.ID)); err != nil {
		log.Printf("Failed to delete doctor cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "doctors_cache*"); err != nil {
		log.Printf("Failed to delete doctors cache: %v", err)
	}
	return nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*models.DoctorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.doctorCacheKey(id)
	var doctor models.DoctorProfile
	if found, err := r.cache.GetJSON(ctx, cacheKey, &doctor); err == nil && found {
		return &doctor, nil
	} else if err != nil {
		log.Printf("Failed to get doctor from cache: %v", err)
	}

	err := database.DB.WithContext(ctx).
		Preload("Profile").
		First(&doctor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctor, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctor in cache: %v", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) ListAll(ctx context.Context, excludeID string) ([]models.DoctorProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := "doctors_cache"
	var doctors []models.DoctorProfile
	if found, err := r.cache.GetJSON(ctx, cacheKey, &doctors); err == nil && found {
		return filterDoctors(doctors, excludeID), nil
	} else if err != nil {
		log.Printf("Failed to get doctors from cache: %v", err)
	}

	err := database.DB.WithContext(ctx).
		Preload("Profile").
		Order("specialization").
		Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, doctors, DoctorCacheExpiry); err != nil {
		log.Printf("Failed to set doctors in cache: %v", err)
	}
	return filterDoctors(doctors, excludeID), nil
}

func (r *doctorRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.DoctorProfile{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}

func filterDoctors(doctors []models.DoctorProfile, excludeID string) []models.DoctorProfile {
	if excludeID == "" {
		return doctors
	}
	filtered := make([]models.DoctorProfile, 0, len(doctors))
	for _, d := range doctors {
		if d.ID != excludeID {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func (r *doctorRepository) doctorCacheKey(id string) string {
	return fmt.Sprintf("doctor_cache:%s", id)
}
