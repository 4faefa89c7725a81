package validation

import (
	"errors"
	"regexp"
)

var validCharsUsername = regexp.MustCompile(`^[A-Za-z\d_]+$`)
var validCharsPassword = regexp.MustCompile(`^[A-Za-z\d@$!%*?&#]+$`)

// ValidateUsername returns user-friendly errors
func ValidateUsername(username string) error {
	if len(username) == 0 {
		return errors.New("empty username")
	}
	if len(username) > 16 {
		return errors.New("username too long. Must be 16 characters or less")
	}
	if valid := validCharsUsername.MatchString(username); !valid {
		return errors.New("invalid character(s) detected. only letters, numbers and underscores allowed")
	}
	return nil
}

// ValidatePassword returns user-friendly errors
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password too short. Must be 8 characters or more")
	}
	if len(password) > 64 {
		return errors.New("password too long. Must be 64 characters or less")
	}
	if valid := validCharsPassword.MatchString(password); !valid {
		return errors.New("invalid character(s) detected. only normal characters, numbers, and some symbols allowed")
	}
	return nil
}
