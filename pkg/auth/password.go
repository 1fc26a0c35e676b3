package auth

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 5
	maxPasswordLen = 10
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// HashPassword returns a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword validates a password against a bcrypt hash.
func CheckPassword(password, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// ValidatePassword enforces the registration length constraint.
func ValidatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password should be filled out")
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return errors.New("password size should be in between 5 and 10")
	}
	return nil
}

// ValidateEmail checks that email is present and well-formed.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email should be filled out")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("please provide a valid email address")
	}
	return nil
}
