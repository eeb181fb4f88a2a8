package utils

import (
	"regexp"

	"github.com/iliyamo/secure-auth-api/internal/model"
)

// FieldError describes a single request validation failure.  Validation
// errors are returned to the client as a list so a form can annotate every
// offending field at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// emailRe is intentionally permissive; the unique index on users.email is
// the real gatekeeper.  It only rejects strings that cannot possibly be an
// address.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool { return emailRe.MatchString(s) }

// NameOK reports whether a first or last name has an acceptable length.
func NameOK(s string) bool { return len(s) >= 2 && len(s) <= 50 }

// ValidateRegister checks a registration request.  An empty role is
// allowed; it defaults to USER at the handler.
func ValidateRegister(email, password, firstName, lastName, role string) []FieldError {
	var errs []FieldError
	if email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !IsEmail(email) {
		errs = append(errs, FieldError{"email", "Please provide a valid email address"})
	}
	if password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	} else if len(password) < 8 {
		errs = append(errs, FieldError{"password", "Password must be at least 8 characters long"})
	}
	if firstName == "" {
		errs = append(errs, FieldError{"firstName", "First name is required"})
	} else if !NameOK(firstName) {
		errs = append(errs, FieldError{"firstName", "First name must be between 2 and 50 characters"})
	}
	if lastName == "" {
		errs = append(errs, FieldError{"lastName", "Last name is required"})
	} else if !NameOK(lastName) {
		errs = append(errs, FieldError{"lastName", "Last name must be between 2 and 50 characters"})
	}
	if role != "" && !model.ValidRole(role) {
		errs = append(errs, FieldError{"role", "Role must be either ADMIN or USER"})
	}
	return errs
}

// ValidateLogin checks a login request.  The claimed role is required so
// the server can verify it against the stored principal.
func ValidateLogin(email, password, role string) []FieldError {
	var errs []FieldError
	if email == "" {
		errs = append(errs, FieldError{"email", "Email is required"})
	} else if !IsEmail(email) {
		errs = append(errs, FieldError{"email", "Please provide a valid email address"})
	}
	if password == "" {
		errs = append(errs, FieldError{"password", "Password is required"})
	}
	if role == "" {
		errs = append(errs, FieldError{"role", "Role is required"})
	} else if !model.ValidRole(role) {
		errs = append(errs, FieldError{"role", "Role must be either ADMIN or USER"})
	}
	return errs
}
