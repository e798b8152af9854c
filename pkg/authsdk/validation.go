package authsdk

import (
	"regexp"
	"strings"
	"time"
)

const (
	MinPasswordLength = 6
	DateOfBirthLayout = "2006-01-02"

	reasonRequired      = "required"
	reasonEmail         = "Please enter a valid email address"
	reasonPasswordShort = "Password must be at least 6 characters"
	reasonMismatch      = "Passwords do not match"
	reasonDOBFormat     = "Date of birth must be YYYY-MM-DD"
	reasonDOBPast       = "Date of birth must be in the past"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)

// ValidEmail reports whether s looks like an address the service accepts.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// LoginForm is what a user types on the login screen.
type LoginForm struct {
	Email    string
	Password string
}

// Validate returns a *ValidationError or nil.
func (f LoginForm) Validate() error {
	errs := make(map[string]string)
	if !ValidEmail(f.Email) {
		errs["email"] = reasonEmail
	}
	if len(f.Password) < MinPasswordLength {
		errs["password"] = reasonPasswordShort
	}
	return asValidationError(errs)
}

func (f LoginForm) Request() LoginRequest {
	return LoginRequest{Email: f.Email, Password: f.Password}
}

// RegistrationForm is the sign-up screen, including the confirmation
// password which is checked here and never sent.
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	DateOfBirth     string
	Gender          string
}

// Validate checks every field; the date of birth must fall strictly before
// the calendar day of now.
func (f RegistrationForm) Validate(now time.Time) error {
	errs := make(map[string]string)

	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = reasonRequired
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = reasonRequired
	}
	if !ValidEmail(f.Email) {
		errs["email"] = reasonEmail
	}
	if len(f.Password) < MinPasswordLength {
		errs["password"] = reasonPasswordShort
	}
	if f.Password != f.ConfirmPassword {
		errs["confirmPassword"] = reasonMismatch
	}
	if msg := validateDateOfBirth(f.DateOfBirth, now); msg != "" {
		errs["dateOfBirth"] = msg
	}
	if strings.TrimSpace(f.Gender) == "" {
		errs["gender"] = reasonRequired
	}

	return asValidationError(errs)
}

// Request drops ConfirmPassword.
func (f RegistrationForm) Request() RegisterRequest {
	return RegisterRequest{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		Email:       f.Email,
		Password:    f.Password,
		DateOfBirth: f.DateOfBirth,
		Gender:      strings.TrimSpace(f.Gender),
	}
}

// ValidateRegisterRequest applies the form rules that survive the wire,
// for servers receiving a RegisterRequest.
func ValidateRegisterRequest(r RegisterRequest, now time.Time) error {
	return RegistrationForm{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.Password,
		DateOfBirth:     r.DateOfBirth,
		Gender:          r.Gender,
	}.Validate(now)
}

func validateDateOfBirth(s string, now time.Time) string {
	if s == "" {
		return reasonRequired
	}
	dob, err := time.ParseInLocation(DateOfBirthLayout, s, now.Location())
	if err != nil {
		return reasonDOBFormat
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !dob.Before(today) {
		return reasonDOBPast
	}
	return ""
}

func asValidationError(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
