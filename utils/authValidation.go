package utils

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
)

var (
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`\d`)
	specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	iso8601Regex   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}`)
)

// RegisterInput is the payload for account registration.
type RegisterInput struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

// ValidateRegisterInput validates a registration payload.
func ValidateRegisterInput(in RegisterInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.FullName, validation.Required, validation.Length(2, 255)),
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		validation.Field(&in.Role, validation.Required, validation.In("patient", "doctor", "admin")),
	)
	if err != nil {
		return err
	}
	if in.Password != in.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	return nil
}

// ValidateBookingInput validates a booking request's doctor id and timestamp.
func ValidateBookingInput(doctorID, appointmentDate string) error {
	return validation.Errors{
		"doctor_id":        validation.Validate(doctorID, validation.Required),
		"appointment_date": validation.Validate(appointmentDate, validation.Required, validation.Match(iso8601Regex).Error("must be an ISO-8601 timestamp")),
	}.Filter()
}

// ValidateScheduleInput validates a doctor schedule upsert.
func ValidateScheduleInput(fullName, specialization string, fee int) error {
	return validation.Errors{
		"full_name":        validation.Validate(fullName, validation.Required, validation.Length(2, 255)),
		"specialization":   validation.Validate(specialization, validation.Required),
		"consultation_fee": validation.Validate(fee, validation.Min(0)),
	}.Filter()
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	return validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
