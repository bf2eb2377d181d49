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

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	AppointmentCacheExpiry = 15 * time.Minute
)

// AppointmentRepository persists appointments. All slot-conflict checking
// happens inside database transactions, backed by the partial unique index on
// (doctor_id, appointment_date), so concurrent bookings cannot double-book.
type AppointmentRepository interface {
	Book(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error)
	TransitionStatus(ctx context.Context, id, newStatus string) error
	Reschedule(ctx context.Context, id, newDate string) error
	CompleteWithPrescription(ctx context.Context, id string, prescription *models.Prescription) error
	CountOnDay(ctx context.Context, day string) (int64, error)
}

type appointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) AppointmentRepository {
	return &appointmentRepository{cache: cache}
}

func (r *appointmentRepository) Book(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	appointment.Status = models.StatusPending

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND appointment_date = ? AND status <> ?",
				appointment.DoctorID, appointment.AppointmentDate, models.StatusCancelled).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check slot availability: %w", err)
		}
		if count > 0 {
			return models.ErrSlotUnavailable
		}
		if err := tx.Create(appointment).Error; err != nil {
			// The partial unique index catches bookings that raced past the
			// count above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrSlotUnavailable
			}
			return fmt.Errorf("failed to create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, appointment.PatientID, appointment.DoctorID)
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.Profile").
		First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(ctx, r.patientCacheKey(patientID), "patient_id = ?", patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, r.doctorCacheKey(doctorID), "doctor_id = ?", doctorID)
}

func (r *appointmentRepository) ListByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) list(ctx context.Context, cacheKey, query string, arg string) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appointments []models.Appointment
	if found, err := r.cache.GetJSON(ctx, cacheKey, &appointments); err == nil && found {
		return appointments, nil
	} else if err != nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	err := database.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.Profile").
		Where(query, arg).
		Order("appointment_date DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	if err := r.cache.SetJSON(ctx, cacheKey, appointments, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) TransitionStatus(ctx context.Context, id, newStatus string) error {
	var patientID, doctorID string

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		if !models.CanTransition(appointment.Status, newStatus) {
			return models.ErrInvalidTransition
		}

		patientID, doctorID = appointment.PatientID, appointment.DoctorID
		return tx.Model(&appointment).Update("status", newStatus).Error
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, patientID, doctorID)
	return nil
}

func (r *appointmentRepository) Reschedule(ctx context.Context, id, newDate string) error {
	var patientID, doctorID string

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		// A schedule change invalidates any prior confirmation, so the row
		// goes back to pending.
		if !models.CanTransition(appointment.Status, models.StatusPending) {
			return models.ErrInvalidTransition
		}

		var count int64
		if err := tx.Model(&models.Appointment{}).
			Where("doctor_id = ? AND appointment_date = ? AND status <> ? AND id <> ?",
				appointment.DoctorID, newDate, models.StatusCancelled, id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check slot availability: %w", err)
		}
		if count > 0 {
			return models.ErrSlotUnavailable
		}

		patientID, doctorID = appointment.PatientID, appointment.DoctorID
		err := tx.Model(&appointment).Updates(map[string]interface{}{
			"appointment_date": newDate,
			"status":           models.StatusPending,
		}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrSlotUnavailable
		}
		return err
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, patientID, doctorID)
	return nil
}

func (r *appointmentRepository) CompleteWithPrescription(ctx context.Context, id string, prescription *models.Prescription) error {
	var patientID, doctorID string

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			return fmt.Errorf("failed to load appointment: %w", err)
		}

		if !models.CanTransition(appointment.Status, models.StatusCompleted) {
			return models.ErrInvalidTransition
		}

		var count int64
		if err := tx.Model(&models.Prescription{}).
			Where("appointment_id = ?", id).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check for existing prescription: %w", err)
		}
		if count > 0 {
			// Prescriptions are immutable, re-issuing is rejected.
			return models.ErrInvalidTransition
		}

		if err := tx.Model(&appointment).Update("status", models.StatusCompleted).Error; err != nil {
			return fmt.Errorf("failed to complete appointment: %w", err)
		}

		if prescription.ID == "" {
			prescription.ID = uuid.New().String()
		}
		prescription.AppointmentID = id
		if err := tx.Create(prescription).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return models.ErrInvalidTransition
			}
			return fmt.Errorf("failed to create prescription: %w", err)
		}

		patientID, doctorID = appointment.PatientID, appointment.DoctorID
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, patientID, doctorID)
	return nil
}

// CountOnDay counts appointments whose timestamp falls on the given
// YYYY-MM-DD day. ISO-8601 storage makes this a prefix match.
func (r *appointmentRepository) CountOnDay(ctx context.Context, day string) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("appointment_date LIKE ?", day+"%").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) invalidate(ctx context.Context, patientID, doctorID string) {
	keys := []string{r.patientCacheKey(patientID), r.doctorCacheKey(doctorID)}
	if err := r.cache.DeleteBatch(ctx, keys...); err != nil {
		log.Printf("Failed to invalidate appointment cache: %v", err)
	}
}

func (r *appointmentRepository) patientCacheKey(patientID string) string {
	return fmt.Sprintf("appointments_cache:patient:%s", patientID)
}

func (r *appointmentRepository) doctorCacheKey(doctorID string) string {
	return fmt.Sprintf("appointments_cache:doctor:%s", doctorID)
}
