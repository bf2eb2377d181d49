package services

import (
	"MediBook/models"
	"MediBook/repositories"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ProfileInput is the payload for a patient's profile upsert.
type ProfileInput struct {
	FullName       string `json:"full_name"`
	MedicalHistory string `json:"medical_history"`
}

// PatientService covers the patient-facing profile, prescription and billing
// views.
type PatientService interface {
	UpsertProfile(ctx context.Context, patientID string, in ProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, patientID string) (*models.Profile, error)
	Prescriptions(ctx context.Context, patientID string) ([]models.Prescription, error)
	Billing(ctx context.Context, patientID string) ([]BillingItem, int, error)
}

type patientService struct {
	profiles      repositories.ProfileRepository
	appointments  repositories.AppointmentRepository
	prescriptions repositories.PrescriptionRepository
}

func NewPatientService(
	profiles repositories.ProfileRepository,
	appointments repositories.AppointmentRepository,
	prescriptions repositories.PrescriptionRepository,
) PatientService {
	return &patientService{
		profiles:      profiles,
		appointments:  appointments,
		prescriptions: prescriptions,
	}
}

func (s *patientService) UpsertProfile(ctx context.Context, patientID string, in ProfileInput) (*models.Profile, error) {
	if err := validation.Validate(in.FullName, validation.Required, validation.Length(2, 255)); err != nil {
		return nil, fmt.Errorf("%w: full_name: %v", models.ErrValidation, err)
	}

	profile := &models.Profile{
		ID:             patientID,
		FullName:       in.FullName,
		MedicalHistory: in.MedicalHistory,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *patientService) GetProfile(ctx context.Context, patientID string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, patientID)
}

func (s *patientService) Prescriptions(ctx context.Context, patientID string) ([]models.Prescription, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	appointmentIDs := make([]string, 0, len(appointments))
	for _, appointment := range appointments {
		appointmentIDs = append(appointmentIDs, appointment.ID)
	}
	return s.prescriptions.ListByAppointmentIDs(ctx, appointmentIDs)
}

func (s *patientService) Billing(ctx context.Context, patientID string) ([]BillingItem, int, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, 0, err
	}
	items, total := BillingStatement(appointments)
	return items, total, nil
}
