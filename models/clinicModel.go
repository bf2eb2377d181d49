package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Profile model, 1:1 with a user account
type Profile struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	FullName       string    `gorm:"column:full_name;not null" json:"full_name"`
	MedicalHistory string    `gorm:"column:medical_history;type:text" json:"medical_history"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// StringList stores a list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for string list: %T", value)
	}
}

// DoctorProfile model, 1:1 with a user account holding the doctor role
type DoctorProfile struct {
	ID              string     `gorm:"primaryKey;column:id" json:"id"`
	Specialization  string     `gorm:"column:specialization;index" json:"specialization"`
	ConsultationFee int        `gorm:"column:consultation_fee" json:"consultation_fee"`
	AvailableDays   StringList `gorm:"column:available_days;type:text" json:"available_days"`
	StartTime       string     `gorm:"column:start_time" json:"start_time"`
	EndTime         string     `gorm:"column:end_time" json:"end_time"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Profile         Profile    `gorm:"foreignKey:ID;references:ID" json:"profile"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Appointment statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// IsTerminalStatus reports whether no further transitions may leave the status.
func IsTerminalStatus(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

// CanTransition reports whether an appointment may move from one status to
// another. Cancelled and completed are terminal.
func CanTransition(from, to string) bool {
	if IsTerminalStatus(from) {
		return false
	}
	switch to {
	case StatusConfirmed:
		return from == StatusPending
	case StatusCancelled:
		return from == StatusPending || from == StatusConfirmed
	case StatusCompleted:
		return from == StatusConfirmed
	case StatusPending:
		// Rescheduling resets any live appointment back to pending.
		return from == StatusPending || from == StatusConfirmed
	}
	return false
}

// Appointment model. A (doctor_id, appointment_date) pair is one bookable
// slot; uniqueness over non-cancelled rows is enforced by a partial index
// created in database.InitDB.
type Appointment struct {
	ID              string        `gorm:"primaryKey;column:id" json:"id"`
	PatientID       string        `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        string        `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	AppointmentDate string        `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	Notes           string        `gorm:"column:notes;type:text" json:"notes"`
	Status          string        `gorm:"column:status;check:status IN ('pending', 'confirmed', 'cancelled', 'completed');not null" json:"status"`
	CreatedAt       time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Patient         Profile       `gorm:"foreignKey:PatientID;references:ID" json:"patient"`
	Doctor          DoctorProfile `gorm:"foreignKey:DoctorID;references:ID" json:"doctor"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Medicine is one entry on a prescription.
type Medicine struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration"`
}

// MedicineList stores the medicines of a prescription as a JSON column.
type MedicineList []Medicine

func (l MedicineList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal medicine list: %w", err)
	}
	return string(b), nil
}

func (l *MedicineList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for medicine list: %T", value)
	}
}

// Prescription model. Written once when a doctor completes an appointment,
// immutable afterwards.
type Prescription struct {
	ID            string       `gorm:"primaryKey;column:id" json:"id"`
	AppointmentID string       `gorm:"column:appointment_id;not null;uniqueIndex" json:"appointment_id"`
	Diagnosis     string       `gorm:"column:diagnosis;type:text;not null" json:"diagnosis"`
	Medicines     MedicineList `gorm:"column:medicines;type:text" json:"medicines"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Appointment   Appointment  `gorm:"foreignKey:AppointmentID;references:ID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
