package domain

import "regexp"

// rePhone accepts international numbers with optional separators.
var rePhone = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,18}[0-9]$`)

// reEmail is a light sanity check, not full RFC validation.
var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidatePhone validates the phone number format.
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

// ValidateEmail validates the email address format.
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}
