package services

import (
	"MediBook/models"
	"MediBook/repositories"
	"MediBook/utils"
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// BookInput is the payload for booking a new appointment.
type BookInput struct {
	DoctorID        string `json:"doctor_id"`
	AppointmentDate string `json:"appointment_date"`
	Notes           string `json:"notes"`
}

// AppointmentService drives the appointment lifecycle: booking, cancelling,
// rescheduling, doctor status updates and completion with a prescription.
type AppointmentService interface {
	Book(ctx context.Context, patientID string, in BookInput) (*models.Appointment, error)
	Cancel(ctx context.Context, callerID, callerRole, appointmentID string) error
	Reschedule(ctx context.Context, callerID, appointmentID, newDate string) error
	SetStatus(ctx context.Context, doctorID, appointmentID, newStatus string) error
	CompleteWithPrescription(ctx context.Context, doctorID, appointmentID, diagnosis string, medicines []models.Medicine) (*models.Prescription, error)
	History(ctx context.Context, patientID string) ([]models.Appointment, error)
}

type appointmentService struct {
	repository repositories.AppointmentRepository
}

func NewAppointmentService(repository repositories.AppointmentRepository) AppointmentService {
	return &appointmentService{repository: repository}
}

func (s *appointmentService) Book(ctx context.Context, patientID string, in BookInput) (*models.Appointment, error) {
	if err := utils.ValidateBookingInput(in.DoctorID, in.AppointmentDate); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	appointment := &models.Appointment{
		PatientID:       patientID,
		DoctorID:        in.DoctorID,
		AppointmentDate: in.AppointmentDate,
		Notes:           in.Notes,
		Status:          models.StatusPending,
	}
	if err := s.repository.Book(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Cancel(ctx context.Context, callerID, callerRole, appointmentID string) error {
	appointment, err := s.repository.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || !ownsAppointment(appointment, callerID, callerRole) {
		// Rows outside the caller's scope look absent, not forbidden.
		return models.ErrNotFound
	}

	// Cancelling an already-cancelled appointment is a no-op success.
	if appointment.Status == models.StatusCancelled {
		return nil
	}
	if appointment.Status == models.StatusCompleted {
		return models.ErrInvalidTransition
	}

	return s.repository.TransitionStatus(ctx, appointmentID, models.StatusCancelled)
}

func (s *appointmentService) Reschedule(ctx context.Context, callerID, appointmentID, newDate string) error {
	if err := validation.Validate(newDate, validation.Required); err != nil {
		return fmt.Errorf("%w: appointment_date: %v", models.ErrValidation, err)
	}

	appointment, err := s.repository.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || appointment.PatientID != callerID {
		return models.ErrNotFound
	}
	if models.IsTerminalStatus(appointment.Status) {
		return models.ErrInvalidTransition
	}

	return s.repository.Reschedule(ctx, appointmentID, newDate)
}

func (s *appointmentService) SetStatus(ctx context.Context, doctorID, appointmentID, newStatus string) error {
	// Doctors may only confirm or cancel; completion goes through
	// CompleteWithPrescription.
	if newStatus != models.StatusConfirmed && newStatus != models.StatusCancelled {
		return models.ErrInvalidStatus
	}

	appointment, err := s.repository.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return models.ErrNotFound
	}
	if newStatus == models.StatusCancelled && appointment.Status == models.StatusCancelled {
		return nil
	}
	if !models.CanTransition(appointment.Status, newStatus) {
		return models.ErrInvalidTransition
	}

	return s.repository.TransitionStatus(ctx, appointmentID, newStatus)
}

func (s *appointmentService) CompleteWithPrescription(ctx context.Context, doctorID, appointmentID, diagnosis string, medicines []models.Medicine) (*models.Prescription, error) {
	if err := validation.Validate(diagnosis, validation.Required); err != nil {
		return nil, fmt.Errorf("%w: diagnosis: %v", models.ErrValidation, err)
	}

	appointment, err := s.repository.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.DoctorID != doctorID {
		return nil, models.ErrNotFound
	}

	prescription := &models.Prescription{
		AppointmentID: appointmentID,
		Diagnosis:     diagnosis,
		Medicines:     medicines,
	}
	if err := s.repository.CompleteWithPrescription(ctx, appointmentID, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *appointmentService) History(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.repository.ListByPatient(ctx, patientID)
}

func ownsAppointment(appointment *models.Appointment, callerID, callerRole string) bool {
	switch callerRole {
	case models.RolePatient:
		return appointment.PatientID == callerID
	case models.RoleDoctor:
		return appointment.DoctorID == callerID
	}
	return false
}
