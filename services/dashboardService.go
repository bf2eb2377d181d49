package services

import (
	"MediBook/models"
	"MediBook/repositories"
	"context"
	"time"
)

// PatientSummary is one de-duplicated entry in a doctor's patient roster.
type PatientSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	MedicalHistory string `json:"medical_history"`
	LastVisit      string `json:"last_visit"`
}

// BillingItem is one line on a patient's billing statement.
type BillingItem struct {
	Date   string `json:"date"`
	Doctor string `json:"doctor"`
	Fee    int    `json:"fee"`
}

// dateLayouts accepted when bucketing appointment timestamps by month.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseAppointmentDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DoctorEarnings sums the consultation fee over completed appointments and
// buckets the same sum by calendar month. Rows with unparsable dates count
// toward the total but are skipped in the monthly buckets.
func DoctorEarnings(appointments []models.Appointment, fee int) (total int, monthly [12]int) {
	for _, appointment := range appointments {
		if appointment.Status != models.StatusCompleted {
			continue
		}
		total += fee
		if t, ok := parseAppointmentDate(appointment.AppointmentDate); ok {
			monthly[int(t.Month())-1] += fee
		}
	}
	return total, monthly
}

// PatientRoster de-duplicates a doctor's appointments by patient, keeping the
// most recent appointment date as the last visit. ISO-8601 dates order
// lexicographically, so string comparison suffices.
func PatientRoster(appointments []models.Appointment) []PatientSummary {
	index := make(map[string]int)
	roster := make([]PatientSummary, 0, len(appointments))
	for _, appointment := range appointments {
		if i, ok := index[appointment.PatientID]; ok {
			if appointment.AppointmentDate > roster[i].LastVisit {
				roster[i].LastVisit = appointment.AppointmentDate
			}
			continue
		}
		index[appointment.PatientID] = len(roster)
		roster = append(roster, PatientSummary{
			ID:             appointment.PatientID,
			Name:           appointment.Patient.FullName,
			MedicalHistory: appointment.Patient.MedicalHistory,
			LastVisit:      appointment.AppointmentDate,
		})
	}
	return roster
}

// BillingStatement builds a patient's billing lines from completed
// appointments. A missing doctor record contributes a zero fee.
func BillingStatement(appointments []models.Appointment) ([]BillingItem, int) {
	items := make([]BillingItem, 0, len(appointments))
	total := 0
	for _, appointment := range appointments {
		if appointment.Status != models.StatusCompleted {
			continue
		}
		fee := appointment.Doctor.ConsultationFee
		total += fee
		items = append(items, BillingItem{
			Date:   appointment.AppointmentDate,
			Doctor: appointment.Doctor.Profile.FullName,
			Fee:    fee,
		})
	}
	return items, total
}

// DoctorDashboard is the read-side rollup for a doctor's landing page.
type DoctorDashboard struct {
	Appointments  []models.Appointment `json:"appointments"`
	TotalEarnings int                  `json:"total_earnings"`
	MonthlyIncome [12]int              `json:"monthly_income"`
}

// PatientDashboard is the read-side rollup for a patient's landing page.
type PatientDashboard struct {
	Appointments      []models.Appointment `json:"appointments"`
	TotalSpent        int                  `json:"total_spent"`
	PrescriptionCount int64                `json:"prescriptions_count"`
}

// HospitalSummary is the admin-facing aggregate view.
type HospitalSummary struct {
	TotalPatients      int64 `json:"total_patients"`
	TotalDoctors       int64 `json:"total_doctors"`
	TodaysAppointments int64 `json:"todays_appointments"`
}

// DashboardService assembles dashboards from fetched appointment and
// prescription rows. The rollup math itself lives in the pure functions above.
type DashboardService interface {
	ForDoctor(ctx context.Context, doctorID string) (*DoctorDashboard, error)
	ForPatient(ctx context.Context, patientID string) (*PatientDashboard, error)
	Hospital(ctx context.Context) (*HospitalSummary, error)
}

type dashboardService struct {
	appointments  repositories.AppointmentRepository
	doctors       repositories.DoctorRepository
	profiles      repositories.ProfileRepository
	prescriptions repositories.PrescriptionRepository
}

func NewDashboardService(
	appointments repositories.AppointmentRepository,
	doctors repositories.DoctorRepository,
	profiles repositories.ProfileRepository,
	prescriptions repositories.PrescriptionRepository,
) DashboardService {
	return &dashboardService{
		appointments:  appointments,
		doctors:       doctors,
		profiles:      profiles,
		prescriptions: prescriptions,
	}
}

func (s *dashboardService) ForDoctor(ctx context.Context, doctorID string) (*DoctorDashboard, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	fee := 0
	if doctor, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		return nil, err
	} else if doctor != nil {
		fee = doctor.ConsultationFee
	}

	total, monthly := DoctorEarnings(appointments, fee)
	return &DoctorDashboard{
		Appointments:  appointments,
		TotalEarnings: total,
		MonthlyIncome: monthly,
	}, nil
}

func (s *dashboardService) ForPatient(ctx context.Context, patientID string) (*PatientDashboard, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	_, totalSpent := BillingStatement(appointments)

	appointmentIDs := make([]string, 0, len(appointments))
	for _, appointment := range appointments {
		appointmentIDs = append(appointmentIDs, appointment.ID)
	}
	prescriptionCount, err := s.prescriptions.CountByAppointmentIDs(ctx, appointmentIDs)
	if err != nil {
		return nil, err
	}

	return &PatientDashboard{
		Appointments:      appointments,
		TotalSpent:        totalSpent,
		PrescriptionCount: prescriptionCount,
	}, nil
}

func (s *dashboardService) Hospital(ctx context.Context) (*HospitalSummary, error) {
	patients, err := s.profiles.CountPatients(ctx)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	today := time.Now().Format("2006-01-02")
	appointments, err := s.appointments.CountOnDay(ctx, today)
	if err != nil {
		return nil, err
	}

	return &HospitalSummary{
		TotalPatients:      patients,
		TotalDoctors:       doctors,
		TodaysAppointments: appointments,
	}, nil
}
