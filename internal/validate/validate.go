// Package validate holds the input checks run before any request leaves the
// client.
package validate

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/common"
)

var (
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrShortPassword    = errors.New("password must be at least 6 characters")
	ErrMissingFields    = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Email only requires an "@"; the backend owns the real check.
func Email(email string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func Password(password string) error {
	if len(password) < common.MinPasswordLength {
		return ErrShortPassword
	}
	return nil
}

// Required fails when any value is empty after trimming whitespace.
func Required(values ...string) error {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

func Confirm(password, confirmation string) error {
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}
