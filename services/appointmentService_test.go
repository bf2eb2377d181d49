package services

import (
	"MediBook/models"
	"MediBook/repositories"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

var _ repositories.AppointmentRepository = (*mockAppointmentRepository)(nil)

type mockAppointmentRepository struct {
	BookFn                     func(ctx context.Context, appointment *models.Appointment) error
	GetByIDFn                  func(ctx context.Context, id string) (*models.Appointment, error)
	ListByPatientFn            func(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctorFn             func(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListByDoctorAndPatientFn   func(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error)
	TransitionStatusFn         func(ctx context.Context, id, newStatus string) error
	RescheduleFn               func(ctx context.Context, id, newDate string) error
	CompleteWithPrescriptionFn func(ctx context.Context, id string, prescription *models.Prescription) error
	CountOnDayFn               func(ctx context.Context, day string) (int64, error)
}

func (m *mockAppointmentRepository) Book(ctx context.Context, appointment *models.Appointment) error {
	return m.BookFn(ctx, appointment)
}

func (m *mockAppointmentRepository) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *mockAppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return m.ListByPatientFn(ctx, patientID)
}

func (m *mockAppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return m.ListByDoctorFn(ctx, doctorID)
}

func (m *mockAppointmentRepository) ListByDoctorAndPatient(ctx context.Context, doctorID, patientID string) ([]models.Appointment, error) {
	return m.ListByDoctorAndPatientFn(ctx, doctorID, patientID)
}

func (m *mockAppointmentRepository) TransitionStatus(ctx context.Context, id, newStatus string) error {
	return m.TransitionStatusFn(ctx, id, newStatus)
}

func (m *mockAppointmentRepository) Reschedule(ctx context.Context, id, newDate string) error {
	return m.RescheduleFn(ctx, id, newDate)
}

func (m *mockAppointmentRepository) CompleteWithPrescription(ctx context.Context, id string, prescription *models.Prescription) error {
	return m.CompleteWithPrescriptionFn(ctx, id, prescription)
}

func (m *mockAppointmentRepository) CountOnDay(ctx context.Context, day string) (int64, error) {
	return m.CountOnDayFn(ctx, day)
}

func TestBookValidatesInput(t *testing.T) {
	service := NewAppointmentService(&mockAppointmentRepository{})

	cases := []struct {
		name string
		in   BookInput
	}{
		{"missing doctor", BookInput{AppointmentDate: "2026-03-10T09:00"}},
		{"missing date", BookInput{DoctorID: "doc-1"}},
		{"malformed date", BookInput{DoctorID: "doc-1", AppointmentDate: "next tuesday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Book(context.Background(), "pat-1", tc.in)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	var stored *models.Appointment
	repo := &mockAppointmentRepository{
		BookFn: func(ctx context.Context, appointment *models.Appointment) error {
			stored = appointment
			return nil
		},
	}
	service := NewAppointmentService(repo)

	appointment, err := service.Book(context.Background(), "pat-1", BookInput{
		DoctorID:        "doc-1",
		AppointmentDate: "2026-03-10T09:00",
		Notes:           "toothache",
	})
	assert.NoError(t, err)
	assert.NotNil(t, stored)
	assert.Equal(t, models.StatusPending, appointment.Status)
	assert.Equal(t, "pat-1", appointment.PatientID)
	assert.Equal(t, "doc-1", appointment.DoctorID)
}

func TestBookSurfacesSlotConflict(t *testing.T) {
	repo := &mockAppointmentRepository{
		BookFn: func(ctx context.Context, appointment *models.Appointment) error {
			return models.ErrSlotUnavailable
		},
	}
	service := NewAppointmentService(repo)

	_, err := service.Book(context.Background(), "pat-1", BookInput{
		DoctorID:        "doc-1",
		AppointmentDate: "2026-03-10T09:00",
	})
	assert.ErrorIs(t, err, models.ErrSlotUnavailable)
}

func TestCancelIsIdempotent(t *testing.T) {
	transitions := 0
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:        id,
				PatientID: "pat-1",
				DoctorID:  "doc-1",
				Status:    models.StatusCancelled,
			}, nil
		},
		TransitionStatusFn: func(ctx context.Context, id, newStatus string) error {
			transitions++
			return nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.Cancel(context.Background(), "pat-1", models.RolePatient, "apt-1")
	assert.NoError(t, err)
	assert.Zero(t, transitions)
}

func TestCancelRejectsCompleted(t *testing.T) {
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:        id,
				PatientID: "pat-1",
				DoctorID:  "doc-1",
				Status:    models.StatusCompleted,
			}, nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.Cancel(context.Background(), "pat-1", models.RolePatient, "apt-1")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestCancelHidesForeignAppointments(t *testing.T) {
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:        id,
				PatientID: "someone-else",
				DoctorID:  "doc-1",
				Status:    models.StatusPending,
			}, nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.Cancel(context.Background(), "pat-1", models.RolePatient, "apt-1")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCancelAllowsOwningDoctor(t *testing.T) {
	var gotStatus string
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:        id,
				PatientID: "pat-1",
				DoctorID:  "doc-1",
				Status:    models.StatusConfirmed,
			}, nil
		},
		TransitionStatusFn: func(ctx context.Context, id, newStatus string) error {
			gotStatus = newStatus
			return nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.Cancel(context.Background(), "doc-1", models.RoleDoctor, "apt-1")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, gotStatus)
}

func TestRescheduleRejectsTerminal(t *testing.T) {
	for _, status := range []string{models.StatusCancelled, models.StatusCompleted} {
		repo := &mockAppointmentRepository{
			GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
				return &models.Appointment{
					ID:        id,
					PatientID: "pat-1",
					Status:    status,
				}, nil
			},
		}
		service := NewAppointmentService(repo)

		err := service.Reschedule(context.Background(), "pat-1", "apt-1", "2026-04-01T10:00")
		assert.ErrorIs(t, err, models.ErrInvalidTransition, status)
	}
}

func TestRescheduleRequiresOwner(t *testing.T) {
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:        id,
				PatientID: "someone-else",
				Status:    models.StatusPending,
			}, nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.Reschedule(context.Background(), "pat-1", "apt-1", "2026-04-01T10:00")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRescheduleMovesLiveAppointment(t *testing.T) {
	var gotDate string
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:        id,
				PatientID: "pat-1",
				Status:    models.StatusConfirmed,
			}, nil
		},
		RescheduleFn: func(ctx context.Context, id, newDate string) error {
			gotDate = newDate
			return nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.Reschedule(context.Background(), "pat-1", "apt-1", "2026-04-01T10:00")
	assert.NoError(t, err)
	assert.Equal(t, "2026-04-01T10:00", gotDate)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	service := NewAppointmentService(&mockAppointmentRepository{})

	for _, status := range []string{"completed", "pending", "bogus", ""} {
		err := service.SetStatus(context.Background(), "doc-1", "apt-1", status)
		assert.ErrorIs(t, err, models.ErrInvalidStatus, status)
	}
}

func TestSetStatusConfirmRequiresPending(t *testing.T) {
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:       id,
				DoctorID: "doc-1",
				Status:   models.StatusConfirmed,
			}, nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.SetStatus(context.Background(), "doc-1", "apt-1", models.StatusConfirmed)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestSetStatusCancelIsIdempotent(t *testing.T) {
	transitions := 0
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:       id,
				DoctorID: "doc-1",
				Status:   models.StatusCancelled,
			}, nil
		},
		TransitionStatusFn: func(ctx context.Context, id, newStatus string) error {
			transitions++
			return nil
		},
	}
	service := NewAppointmentService(repo)

	err := service.SetStatus(context.Background(), "doc-1", "apt-1", models.StatusCancelled)
	assert.NoError(t, err)
	assert.Zero(t, transitions)
}

func TestCompleteWithPrescriptionRequiresDiagnosis(t *testing.T) {
	service := NewAppointmentService(&mockAppointmentRepository{})

	_, err := service.CompleteWithPrescription(context.Background(), "doc-1", "apt-1", "", nil)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCompleteWithPrescriptionRequiresOwningDoctor(t *testing.T) {
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:       id,
				DoctorID: "other-doc",
				Status:   models.StatusConfirmed,
			}, nil
		},
	}
	service := NewAppointmentService(repo)

	_, err := service.CompleteWithPrescription(context.Background(), "doc-1", "apt-1", "gingivitis", nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCompleteWithPrescriptionWritesBoth(t *testing.T) {
	var got *models.Prescription
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:       id,
				DoctorID: "doc-1",
				Status:   models.StatusConfirmed,
			}, nil
		},
		CompleteWithPrescriptionFn: func(ctx context.Context, id string, prescription *models.Prescription) error {
			got = prescription
			return nil
		},
	}
	service := NewAppointmentService(repo)

	medicines := []models.Medicine{{Name: "Amoxicillin", Dosage: "500mg", Duration: "7 days"}}
	prescription, err := service.CompleteWithPrescription(context.Background(), "doc-1", "apt-1", "abscess", medicines)
	assert.NoError(t, err)
	assert.Equal(t, got, prescription)
	assert.Equal(t, "apt-1", prescription.AppointmentID)
	assert.Equal(t, "abscess", prescription.Diagnosis)
	assert.Len(t, prescription.Medicines, 1)
}

func TestCompleteWithPrescriptionRejectsSecondIssue(t *testing.T) {
	repo := &mockAppointmentRepository{
		GetByIDFn: func(ctx context.Context, id string) (*models.Appointment, error) {
			return &models.Appointment{
				ID:       id,
				DoctorID: "doc-1",
				Status:   models.StatusCompleted,
			}, nil
		},
		CompleteWithPrescriptionFn: func(ctx context.Context, id string, prescription *models.Prescription) error {
			return models.ErrInvalidTransition
		},
	}
	service := NewAppointmentService(repo)

	_, err := service.CompleteWithPrescription(context.Background(), "doc-1", "apt-1", "abscess", nil)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}
