// Package validation holds the pure input checks run before any store or
// hashing work. Every function is deterministic and side-effect free.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)*\.[A-Za-z]{2,}$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
	// the special-character class the registration form documents
	symbolRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

var (
	ErrMissingFields = errors.New("Please provide all required fields")
	ErrInvalidName   = errors.New("Please enter a valid name")
	ErrInvalidEmail  = errors.New("Please enter a valid email address")

	ErrPasswordLength  = errors.New("Password must be between 6 and 64 characters long")
	ErrPasswordUpper   = errors.New("Password must contain at least one uppercase letter")
	ErrPasswordDigit   = errors.New("Password must contain at least one number")
	ErrPasswordSpecial = errors.New("Password must contain at least one special character")
)

// ValidateRegistration trims and checks a registration payload. On success it
// returns the cleaned name, the lowercased email and the password.
func ValidateRegistration(name, email, password string) (string, string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if name == "" || email == "" || password == "" {
		return "", "", "", ErrMissingFields
	}
	if len(name) < 2 || !nameRe.MatchString(name) {
		return "", "", "", ErrInvalidName
	}
	if !emailRe.MatchString(email) {
		return "", "", "", ErrInvalidEmail
	}
	if err := checkPasswordStrength(password); err != nil {
		return "", "", "", err
	}
	return name, strings.ToLower(email), password, nil
}

// ValidateLogin trims and checks a login payload. Password strength is only
// enforced at registration; here the password merely has to be present.
func ValidateLogin(email, password string) (string, string, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return "", "", ErrMissingFields
	}
	if !emailRe.MatchString(email) {
		return "", "", ErrInvalidEmail
	}
	return strings.ToLower(email), password, nil
}

// checkPasswordStrength short-circuits on the first violated rule, in the
// fixed order length, uppercase, digit, special character.
func checkPasswordStrength(password string) error {
	if len(password) < 6 || len(password) > 64 {
		return ErrPasswordLength
	}
	if !upperRe.MatchString(password) {
		return ErrPasswordUpper
	}
	if !digitRe.MatchString(password) {
		return ErrPasswordDigit
	}
	if !symbolRe.MatchString(password) {
		return ErrPasswordSpecial
	}
	return nil
}
