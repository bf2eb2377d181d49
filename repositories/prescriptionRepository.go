package repositories

import (
	"MediBook/database"
	"MediBook/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// PrescriptionRepository reads prescriptions. Writes happen only through
// AppointmentRepository.CompleteWithPrescription.
type PrescriptionRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID string) (*models.Prescription, error)
	ListByAppointmentIDs(ctx context.Context, appointmentIDs []string) ([]models.Prescription, error)
	CountByAppointmentIDs(ctx context.Context, appointmentIDs []string) (int64, error)
}

type prescriptionRepository struct{}

func NewPrescriptionRepository() PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) GetByAppointmentID(ctx context.Context, appointmentID string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := database.DB.WithContext(ctx).
		First(&prescription, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByAppointmentIDs(ctx context.Context, appointmentIDs []string) ([]models.Prescription, error) {
	if len(appointmentIDs) == 0 {
		return nil, nil
	}
	var prescriptions []models.Prescription
	err := database.DB.WithContext(ctx).
		Where("appointment_id IN ?", appointmentIDs).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) CountByAppointmentIDs(ctx context.Context, appointmentIDs []string) (int64, error) {
	if len(appointmentIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Prescription{}).
		Where("appointment_id IN ?", appointmentIDs).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}
	return count, nil
}
