package services

import (
	"MediBook/models"
	"MediBook/repositories"
	"MediBook/utils"
	"context"
	"fmt"
)

// ScheduleInput is the payload for a doctor's schedule upsert.
type ScheduleInput struct {
	FullName        string   `json:"full_name"`
	Specialization  string   `json:"specialization"`
	ConsultationFee int      `json:"consultation_fee"`
	AvailableDays   []string `json:"available_days"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
}

// PatientDetail bundles everything a doctor sees about one of their patients.
type PatientDetail struct {
	Profile       *models.Profile       `json:"profile"`
	Appointments  []models.Appointment  `json:"appointments"`
	Prescriptions []models.Prescription `json:"prescriptions"`
}

// DoctorService covers the doctor-facing schedule and patient views.
type DoctorService interface {
	UpsertSchedule(ctx context.Context, doctorID string, in ScheduleInput) (*models.DoctorProfile, error)
	GetSchedule(ctx context.Context, doctorID string) (*models.DoctorProfile, error)
	ListDoctors(ctx context.Context, excludeID string) ([]models.DoctorProfile, error)
	Roster(ctx context.Context, doctorID string) ([]PatientSummary, error)
	PatientDetail(ctx context.Context, doctorID, patientID string) (*PatientDetail, error)
	Transactions(ctx context.Context, doctorID string) ([]models.Appointment, int, error)
}

type doctorService struct {
	doctors       repositories.DoctorRepository
	appointments  repositories.AppointmentRepository
	profiles      repositories.ProfileRepository
	prescriptions repositories.PrescriptionRepository
}

func NewDoctorService(
	doctors repositories.DoctorRepository,
	appointments repositories.AppointmentRepository,
	profiles repositories.ProfileRepository,
	prescriptions repositories.PrescriptionRepository,
) DoctorService {
	return &doctorService{
		doctors:       doctors,
		appointments:  appointments,
		profiles:      profiles,
		prescriptions: prescriptions,
	}
}

func (s *doctorService) UpsertSchedule(ctx context.Context, doctorID string, in ScheduleInput) (*models.DoctorProfile, error) {
	if err := utils.ValidateScheduleInput(in.FullName, in.Specialization, in.ConsultationFee); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	profile := &models.Profile{
		ID:       doctorID,
		FullName: in.FullName,
	}
	doctor := &models.DoctorProfile{
		ID:              doctorID,
		Specialization:  in.Specialization,
		ConsultationFee: in.ConsultationFee,
		AvailableDays:   models.StringList(in.AvailableDays),
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
	}
	if err := s.doctors.UpsertSchedule(ctx, profile, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *doctorService) GetSchedule(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	return s.doctors.GetByID(ctx, doctorID)
}

func (s *doctorService) ListDoctors(ctx context.Context, excludeID string) ([]models.DoctorProfile, error) {
	return s.doctors.ListAll(ctx, excludeID)
}

func (s *doctorService) Roster(ctx context.Context, doctorID string) ([]PatientSummary, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return PatientRoster(appointments), nil
}

func (s *doctorService) PatientDetail(ctx context.Context, doctorID, patientID string) (*PatientDetail, error) {
	appointments, err := s.appointments.ListByDoctorAndPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}
	// Only patients with a shared appointment history are visible.
	if len(appointments) == 0 {
		return nil, models.ErrNotFound
	}

	profile, err := s.profiles.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.ErrNotFound
	}

	appointmentIDs := make([]string, 0, len(appointments))
	for _, appointment := range appointments {
		appointmentIDs = append(appointmentIDs, appointment.ID)
	}
	prescriptions, err := s.prescriptions.ListByAppointmentIDs(ctx, appointmentIDs)
	if err != nil {
		return nil, err
	}

	return &PatientDetail{
		Profile:       profile,
		Appointments:  appointments,
		Prescriptions: prescriptions,
	}, nil
}

// Transactions returns a doctor's completed appointments and the fee charged
// per visit.
func (s *doctorService) Transactions(ctx context.Context, doctorID string) ([]models.Appointment, int, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, 0, err
	}

	completed := make([]models.Appointment, 0, len(appointments))
	for _, appointment := range appointments {
		if appointment.Status == models.StatusCompleted {
			completed = append(completed, appointment)
		}
	}

	fee := 0
	if doctor, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, 0, err
	} else if doctor != nil {
		fee = doctor.ConsultationFee
	}

	return completed, fee, nil
}
